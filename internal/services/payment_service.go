package services

import (
	"context"
	"fmt"
	"strings"

	"tiketi/internal/clickpesa"
	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
	"tiketi/internal/repositories"
	"tiketi/internal/utils"
)

// Gateway is the slice of the ClickPesa client the payment flow consumes.
type Gateway interface {
	InitiateUSSDPush(ctx context.Context, amount, phone, orderReference string) (clickpesa.PushResponse, error)
	VerifyTransaction(ctx context.Context, reference string) (clickpesa.VerifyResponse, error)
}

// Callback outcomes.
const (
	CallbackSettled          = "settled"
	CallbackAlreadyProcessed = "already_processed"
	CallbackCancelled        = "cancelled"
	CallbackFailed           = "failed"
)

// PaymentStart reports a USSD-PUSH initiation back to the caller.
type PaymentStart struct {
	BookingCode    string `json:"booking_code"`
	TransactionID  string `json:"transaction_id"`
	ProviderStatus string `json:"provider_status"`
	Message        string `json:"message"`
}

// CallbackResult is the structured answer of the callback entry point.
// Success, duplicate and failure are all distinguishable by Outcome.
type CallbackResult struct {
	Outcome      string            `json:"outcome"`
	Reference    string            `json:"reference"`
	ErrorMessage string            `json:"error_message,omitempty"`
	Settlement   *SettlementResult `json:"settlement,omitempty"`
}

// PaymentService glues the gateway to the settlement coordinator. Vendor
// flow and round trips are explicit calls, not ambient session flags.
type PaymentService struct {
	Gateway     Gateway
	Settlement  SettlementService
	BookingRepo repositories.BookingRepository
	RequestID   string

	// Settle overrides the settlement call in tests.
	Settle func(ctx context.Context, transToken, bookingCode string) (SettlementResult, error)
}

func (s PaymentService) settle(ctx context.Context, transToken, bookingCode string) (SettlementResult, error) {
	if s.Settle != nil {
		return s.Settle(ctx, transToken, bookingCode)
	}
	sv := s.Settlement
	sv.RequestID = s.RequestID
	return sv.ProcessConfirmedPayment(ctx, transToken, bookingCode)
}

// StartPayment pushes a payment request to the customer's phone for an
// unpaid booking. The phone argument falls back to the booking's customer
// phone when empty.
func (s PaymentService) StartPayment(ctx context.Context, bookingCode, phone string) (PaymentStart, error) {
	var out PaymentStart

	booking, err := s.BookingRepo.GetByCode(strings.TrimSpace(bookingCode))
	if err != nil {
		return out, err
	}
	if booking.PaymentStatus != models.PaymentStatusUnpaid {
		return out, domain.ConflictError{Resource: "booking", Msg: "already paid"}
	}

	if phone == "" {
		phone = booking.CustomerPhone
	}
	if strings.TrimSpace(phone) == "" {
		return out, domain.ValidationError{Field: "phone", Msg: "required for USSD push"}
	}

	push, err := s.Gateway.InitiateUSSDPush(ctx, booking.Amount.String(), phone, booking.BookingCode)
	if err != nil {
		utils.LogEvent(s.RequestID, "payment", "initiate",
			fmt.Sprintf("booking_code=%s push failed: %v", booking.BookingCode, err))
		return out, domain.InternalError{Msg: "failed to initiate payment", Err: err}
	}

	utils.LogEvent(s.RequestID, "payment", "initiate",
		fmt.Sprintf("booking_code=%s transaction_id=%s status=%s", booking.BookingCode, push.ID, push.Status))

	out.BookingCode = booking.BookingCode
	out.TransactionID = push.ID
	out.ProviderStatus = push.Status
	out.Message = "Payment request sent to your phone. Enter your PIN to complete the payment."
	return out, nil
}

// confirmPayment runs the cancelled/failed short circuit and the gateway
// lookup. A non-nil result means the payment must not be settled; nil
// with nil error means the gateway confirmed success.
func (s PaymentService) confirmPayment(ctx context.Context, reference, status string) (*CallbackResult, error) {
	if status == "cancelled" || status == "failed" {
		utils.LogEvent(s.RequestID, "payment", "callback",
			fmt.Sprintf("reference=%s status=%s", reference, status))
		return &CallbackResult{
			Reference:    reference,
			Outcome:      CallbackCancelled,
			ErrorMessage: "transaction was " + status,
		}, nil
	}

	if strings.TrimSpace(reference) == "" {
		return nil, domain.ValidationError{Field: "reference", Msg: "no transaction reference provided in callback"}
	}

	verify, err := s.Gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		utils.LogEvent(s.RequestID, "payment", "verify",
			fmt.Sprintf("reference=%s error=%v", reference, err))
		return nil, domain.InternalError{Msg: "payment verification failed", Err: err}
	}

	if verify.Status != clickpesa.StatusSuccess {
		msg := verify.Message
		if msg == "" {
			msg = "unknown verification error"
		}
		utils.LogEvent(s.RequestID, "payment", "verify",
			fmt.Sprintf("reference=%s status=%s msg=%s", reference, verify.Status, msg))
		return &CallbackResult{
			Reference:    reference,
			Outcome:      CallbackFailed,
			ErrorMessage: msg,
		}, nil
	}
	return nil, nil
}

// HandleCallback is the single settlement entry point for gateway
// callbacks. Nothing escapes it unconverted: verification failures,
// duplicates and cancellations all come back as a structured result.
func (s PaymentService) HandleCallback(ctx context.Context, reference, merchantReference, status string) (CallbackResult, error) {
	res := CallbackResult{Reference: reference}

	early, err := s.confirmPayment(ctx, reference, status)
	if err != nil {
		return res, err
	}
	if early != nil {
		return *early, nil
	}

	settlement, err := s.settle(ctx, reference, merchantReference)
	if err != nil {
		return res, err
	}

	res.Settlement = &settlement
	if settlement.Status == SettlementAlreadyProcessed {
		res.Outcome = CallbackAlreadyProcessed
	} else {
		res.Outcome = CallbackSettled
	}
	return res, nil
}

// SettleRoundTrip settles both legs of a round trip against one payment
// reference. The same cancelled/failed short circuit and gateway lookup
// guard it as single-leg callbacks; money moves only for a confirmed
// payment. Legs then settle independently; a failure on the second leg
// does not undo the first (the first leg's transaction already committed)
// and is reported for reconciliation.
func (s PaymentService) SettleRoundTrip(ctx context.Context, reference, outboundCode, returnCode, status string) (CallbackResult, CallbackResult, error) {
	early, err := s.confirmPayment(ctx, reference, status)
	if err != nil {
		return CallbackResult{Reference: reference}, CallbackResult{Reference: reference}, err
	}
	if early != nil {
		return *early, *early, nil
	}

	first, err := s.settle(ctx, reference, outboundCode)
	if err != nil {
		return CallbackResult{Reference: reference}, CallbackResult{Reference: reference}, err
	}
	second, err := s.settle(ctx, reference, returnCode)
	if err != nil {
		utils.LogEvent(s.RequestID, "payment", "roundtrip",
			fmt.Sprintf("reference=%s outbound settled but return leg failed: %v", reference, err))
		return wrapSettlement(reference, first), CallbackResult{Reference: reference}, err
	}
	return wrapSettlement(reference, first), wrapSettlement(reference, second), nil
}

func wrapSettlement(reference string, s SettlementResult) CallbackResult {
	out := CallbackResult{Reference: reference, Settlement: &s}
	if s.Status == SettlementAlreadyProcessed {
		out.Outcome = CallbackAlreadyProcessed
	} else {
		out.Outcome = CallbackSettled
	}
	return out
}
