package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
	"tiketi/internal/repositories"
	"tiketi/internal/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

// ReceiptService renders payment receipts and hire vouchers as PDFs.
type ReceiptService struct {
	BookingRepo repositories.BookingRepository
	OrderRepo   repositories.OrderRepository
	RequestID   string
	Loader      func(string) (receiptData, error)
}

type receiptData struct {
	BookingCode   string
	CustomerName  string
	CustomerPhone string
	TravelDate    string
	PaymentMethod string
	TransToken    string

	Amount     decimal.Decimal
	BimaAmount decimal.Decimal
}

// GenerateBookingReceipt builds a receipt for a settled booking. Unpaid
// bookings have nothing to receipt.
func (s ReceiptService) GenerateBookingReceipt(bookingCode string) ([]byte, string, error) {
	data, err := s.loadReceiptData(bookingCode)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "receipts", "booking", "booking_code="+data.BookingCode)
	return buildReceiptPDF(data)
}

// GenerateHireVoucher builds the customer copy of a hire order.
func (s ReceiptService) GenerateHireVoucher(orderID int64) ([]byte, string, error) {
	order, err := s.OrderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "receipts", "hire_voucher", fmt.Sprintf("order_id=%d", orderID))
	return buildVoucherPDF(order)
}

func (s ReceiptService) loadReceiptData(bookingCode string) (receiptData, error) {
	if s.Loader != nil {
		return s.Loader(bookingCode)
	}
	var out receiptData
	b, err := s.BookingRepo.GetByCode(bookingCode)
	if err != nil {
		return out, err
	}
	if b.PaymentStatus != models.PaymentStatusPaid {
		return out, domain.ConflictError{Resource: "booking", Msg: "booking is not paid"}
	}
	out.BookingCode = b.BookingCode
	out.CustomerName = b.CustomerName
	out.CustomerPhone = b.CustomerPhone
	out.TravelDate = b.TravelDate
	out.PaymentMethod = b.PaymentMethod
	out.TransToken = b.TransToken
	out.Amount = b.Amount
	out.BimaAmount = b.BimaAmount
	return out, nil
}

func buildReceiptPDF(d receiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Code   : %s", orDash(d.BookingCode)),
		fmt.Sprintf("Customer       : %s", orDash(d.CustomerName)),
		fmt.Sprintf("Phone          : %s", orDash(d.CustomerPhone)),
		fmt.Sprintf("Travel Date    : %s", orDash(d.TravelDate)),
		fmt.Sprintf("Payment Method : %s", orDash(d.PaymentMethod)),
		fmt.Sprintf("Reference      : %s", orDash(d.TransToken)),
		fmt.Sprintf("Issued         : %s", time.Now().Format("2006-01-02 15:04")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Amount Paid: "+utils.FormatTZS(d.Amount))
	pdf.Ln(8)
	if d.BimaAmount.IsPositive() {
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, "Includes travel insurance: "+utils.FormatTZS(d.BimaAmount))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Keep this receipt as proof of payment. Present it together with a valid ID when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("RECEIPT_%s.pdf", filenamePart(d.BookingCode))
	return buf.Bytes(), filename, nil
}

func buildVoucherPDF(o models.HireOrder) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Hire Voucher", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SPECIAL HIRE VOUCHER")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Order No    : #%d", o.ID),
		fmt.Sprintf("Customer    : %s", orDash(o.CustomerName)),
		fmt.Sprintf("Phone       : %s", orDash(o.CustomerPhone)),
		fmt.Sprintf("Pickup      : %s", orDash(o.PickupLocation)),
		fmt.Sprintf("Dropoff     : %s", orDash(o.DropoffLocation)),
		fmt.Sprintf("Date/Time   : %s %s", orDash(o.HireDate), orDash(o.HireTime)),
		fmt.Sprintf("Passengers  : %d", o.PassengersCount),
		fmt.Sprintf("Distance    : %s km", o.DistanceKm),
		fmt.Sprintf("Status      : %s / %s", o.OrderStatus, o.PaymentStatus),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatTZS(o.TotalAmount))
	pdf.Ln(8)
	if o.SurchargeAmount.IsPositive() {
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, fmt.Sprintf("Includes %s%% surcharge: %s",
			o.SurchargePct, utils.FormatTZS(o.SurchargeAmount)))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("VOUCHER_%d_%s.pdf", o.ID, filenamePart(o.CustomerName))
	return buf.Bytes(), filename, nil
}

func orDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

func filenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
