package handlers

import (
	"net/http"
	"strings"
	"sync"

	"tiketi/internal/http/middleware"
	"tiketi/internal/repositories"
	"tiketi/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	gatewayMu sync.RWMutex
	gateway   services.Gateway
)

// SetGateway installs the configured payment gateway at startup.
func SetGateway(g services.Gateway) {
	gatewayMu.Lock()
	defer gatewayMu.Unlock()
	gateway = g
}

func activeGateway() services.Gateway {
	gatewayMu.RLock()
	defer gatewayMu.RUnlock()
	return gateway
}

func paymentService(c *gin.Context) (services.PaymentService, bool) {
	gw := activeGateway()
	if gw == nil {
		RespondError(c, http.StatusServiceUnavailable, "payment gateway not configured", nil)
		return services.PaymentService{}, false
	}
	reqID := middleware.GetRequestID(c)
	return services.PaymentService{
		Gateway: gw,
		Settlement: services.SettlementService{
			RequestID: reqID,
		},
		BookingRepo: repositories.BookingRepository{},
		RequestID:   reqID,
	}, true
}

type startPaymentRequest struct {
	BookingCode string `json:"booking_code"`
	Phone       string `json:"phone"`
}

// POST /api/payments/initiate
func InitiatePayment(c *gin.Context) {
	var req startPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc, ok := paymentService(c)
	if !ok {
		return
	}
	out, err := svc.StartPayment(c.Request.Context(), req.BookingCode, req.Phone)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type callbackRequest struct {
	Reference         string `json:"reference"`
	MerchantReference string `json:"merchant_reference"`
	Status            string `json:"status"`
	ReturnBookingCode string `json:"return_booking_code"`
}

// POST /api/payments/callback
func PaymentCallback(c *gin.Context) {
	var req callbackRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc, ok := paymentService(c)
	if !ok {
		return
	}

	// Round trips carry a second booking code and settle both legs once
	// the payment itself is confirmed.
	if strings.TrimSpace(req.ReturnBookingCode) != "" {
		first, second, err := svc.SettleRoundTrip(c.Request.Context(),
			req.Reference, req.MerchantReference, req.ReturnBookingCode, req.Status)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		status := http.StatusOK
		if first.Outcome == services.CallbackFailed {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"outbound": first, "return": second})
		return
	}

	res, err := svc.HandleCallback(c.Request.Context(), req.Reference, req.MerchantReference, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	status := http.StatusOK
	if res.Outcome == services.CallbackFailed {
		status = http.StatusBadGateway
	}
	c.JSON(status, res)
}

// GET /api/payments/:reference/verify
func VerifyPayment(c *gin.Context) {
	reference := strings.TrimSpace(c.Param("reference"))
	if reference == "" {
		RespondError(c, http.StatusBadRequest, "missing reference", nil)
		return
	}
	gw := activeGateway()
	if gw == nil {
		RespondError(c, http.StatusServiceUnavailable, "payment gateway not configured", nil)
		return
	}
	out, err := gw.VerifyTransaction(c.Request.Context(), reference)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
