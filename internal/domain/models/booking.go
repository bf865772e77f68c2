package models

import "github.com/shopspring/decimal"

// Booking payment statuses. A booking moves Unpaid -> Paid exactly once.
const (
	PaymentStatusUnpaid = "Unpaid"
	PaymentStatusPaid   = "Paid"
)

// Booking captures the fields the payment flow needs. The full bookings
// table carries more customer columns; the repository only scans these.
type Booking struct {
	ID          int64
	BookingCode string

	Amount             decimal.Decimal // gross amount charged to the customer
	BusFee             decimal.Decimal // operator base fare share
	BimaAmount         decimal.Decimal // insurance premium, zero when none
	CancellationCredit decimal.Decimal

	TravelDate    string
	InsuranceDate string

	PaymentStatus string
	TransStatus   string
	TransToken    string
	PaymentMethod string

	BusID    int64
	VendorID int64 // zero when the booking has no vendor referral

	CustomerName  string
	CustomerPhone string
	CustomerEmail string
}

// HasVendor reports whether a vendor referral is attached.
func (b Booking) HasVendor() bool { return b.VendorID > 0 }

// SettlementContext joins the booking with the commission rates the split
// needs, loaded in one locked read at the start of settlement.
type SettlementContext struct {
	Booking Booking

	CompanyID      int64
	CompanyPercent decimal.Decimal

	VendorPercent decimal.Decimal
}
