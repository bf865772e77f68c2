package handlers

import (
	"net/http"
	"strings"

	"tiketi/internal/http/middleware"
	"tiketi/internal/repositories"
	"tiketi/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/:code/receipt
func GetBookingReceiptPDF(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		RespondError(c, http.StatusBadRequest, "missing booking code", nil)
		return
	}

	svc := services.ReceiptService{
		BookingRepo: repositories.BookingRepository{},
		OrderRepo:   repositories.OrderRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateBookingReceipt(code)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/orders/:id/voucher
func GetHireVoucherPDF(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}

	svc := services.ReceiptService{
		BookingRepo: repositories.BookingRepository{},
		OrderRepo:   repositories.OrderRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateHireVoucher(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
