package models

import "github.com/shopspring/decimal"

// Special-hire order statuses.
const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderInProgress = "in_progress"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// Order payment statuses (special hire uses its own vocabulary, distinct
// from the booking settlement Unpaid/Paid pair).
const (
	OrderPaymentPending  = "pending"
	OrderPaymentPaid     = "paid"
	OrderPaymentRefunded = "refunded"
)

// HireOrder is one special-hire reservation with its price snapshot.
type HireOrder struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"user_id"`
	CoasterID int64 `json:"coaster_id"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email,omitempty"`

	PickupLocation   string  `json:"pickup_location"`
	PickupLatitude   float64 `json:"pickup_latitude,omitempty"`
	PickupLongitude  float64 `json:"pickup_longitude,omitempty"`
	DropoffLocation  string  `json:"dropoff_location"`
	DropoffLatitude  float64 `json:"dropoff_latitude,omitempty"`
	DropoffLongitude float64 `json:"dropoff_longitude,omitempty"`

	HireDate        string `json:"hire_date"`
	HireTime        string `json:"hire_time"`
	ReturnDate      string `json:"return_date,omitempty"`
	ReturnTime      string `json:"return_time,omitempty"`
	PassengersCount int    `json:"passengers_count"`
	Purpose         string `json:"purpose,omitempty"`
	Notes           string `json:"notes,omitempty"`

	DistanceKm      decimal.Decimal `json:"distance_km"`
	BasePrice       decimal.Decimal `json:"base_price"`
	PricePerKm      decimal.Decimal `json:"price_per_km"`
	KmAmount        decimal.Decimal `json:"km_amount"`
	SurchargePct    decimal.Decimal `json:"surcharge_percent"`
	SurchargeAmount decimal.Decimal `json:"surcharge_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`

	OrderStatus   string `json:"order_status"`
	PaymentStatus string `json:"payment_status"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Status        string
	PaymentStatus string
	HireDate      string
	CoasterID     int64
	Page          int
	PerPage       int
}

// OrderUpdate supports PATCH-style status updates via key presence.
type OrderUpdate struct {
	OrderStatus   *string `json:"order_status"`
	PaymentStatus *string `json:"payment_status"`
	PaymentMethod *string `json:"payment_method"`
}
