// Package clickpesa is a thin client for the ClickPesa third-party payments
// API: token generation, USSD-PUSH initiation and transaction verification.
// Settlement never calls the network; callers verify first and hand the
// result to the settlement service.
package clickpesa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tiketi/internal/utils"
)

const (
	// Verification statuses reported by the gateway.
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusPending = "pending"
)

type Client struct {
	APIKey   string
	ClientID string
	BaseURL  string
	HTTP     *http.Client
}

func NewClient(apiKey, clientID, baseURL string) *Client {
	return &Client{
		APIKey:   apiKey,
		ClientID: clientID,
		BaseURL:  strings.TrimRight(baseURL, "/"),
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

// PushRequest describes one USSD-PUSH payment request.
type PushRequest struct {
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	OrderReference string `json:"orderReference"`
	PhoneNumber    string `json:"phoneNumber"`
}

// PushResponse is the gateway's answer to a USSD-PUSH initiation.
type PushResponse struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	Channel        string `json:"channel,omitempty"`
	OrderReference string `json:"orderReference,omitempty"`
	Message        string `json:"message,omitempty"`
}

// VerifyResponse is the gateway's answer to a transaction lookup.
type VerifyResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Raw     json.RawMessage `json:"-"`
}

type tokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// GenerateToken fetches a short-lived bearer token. The gateway returns the
// token with a "Bearer " prefix already attached; we strip it.
func (c *Client) GenerateToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/generate-token", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("client-id", c.ClientID)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("clickpesa token: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("clickpesa token: parse response: %w", err)
	}
	if !tok.Success || tok.Token == "" {
		return "", fmt.Errorf("clickpesa token: invalid response")
	}
	return strings.TrimPrefix(tok.Token, "Bearer "), nil
}

// InitiateUSSDPush sends the payment request to the customer's phone. The
// amount is serialized as a string and the phone/reference are normalized
// to what the gateway accepts.
func (c *Client) InitiateUSSDPush(ctx context.Context, amount, phone, orderReference string) (PushResponse, error) {
	var out PushResponse

	token, err := c.GenerateToken(ctx)
	if err != nil {
		return out, err
	}

	reference := utils.AlnumOnly(orderReference)
	if reference == "" {
		reference = utils.NewOrderReference()
	}
	payload := PushRequest{
		Amount:         amount,
		Currency:       "TZS",
		OrderReference: reference,
		PhoneNumber:    utils.NormalizePhoneTZ(phone),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/payments/initiate-ussd-push-request", bytes.NewReader(body))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return out, fmt.Errorf("clickpesa push: http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("clickpesa push: parse response: %w", err)
	}
	if out.ID == "" || out.Status == "" {
		msg := out.Message
		if msg == "" {
			msg = "unknown error creating USSD-PUSH request"
		}
		return out, fmt.Errorf("clickpesa push: %s", msg)
	}
	return out, nil
}

// VerifyTransaction looks up a payment by its gateway reference.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (VerifyResponse, error) {
	var out VerifyResponse

	token, err := c.GenerateToken(ctx)
	if err != nil {
		return out, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/payments/"+utils.AlnumOnly(reference), nil)
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return out, fmt.Errorf("clickpesa verify: http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("clickpesa verify: parse response: %w", err)
	}
	out.Raw = json.RawMessage(raw)
	return out, nil
}
