package models

import "github.com/shopspring/decimal"

// Coaster statuses.
const (
	CoasterAvailable   = "available"
	CoasterOnHire      = "on_hire"
	CoasterMaintenance = "maintenance"
)

// Coaster is a special-hire vehicle owned by a platform user.
type Coaster struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"user_id"`
	Name          string  `json:"name"`
	PlateNumber   string  `json:"plate_number"`
	Capacity      int     `json:"capacity"`
	Model         string  `json:"model,omitempty"`
	Color         string  `json:"color,omitempty"`
	Status        string  `json:"status"`
	DriverName    string  `json:"driver_name,omitempty"`
	DriverContact string  `json:"driver_contact,omitempty"`
	Features      string  `json:"features,omitempty"`
	Latitude      float64 `json:"latitude,omitempty"`
	Longitude     float64 `json:"longitude,omitempty"`
	LastLocation  string  `json:"last_location_update,omitempty"`
}

// CoasterPricing is the persisted rate card for one coaster.
type CoasterPricing struct {
	ID                      int64           `json:"id"`
	CoasterID               int64           `json:"coaster_id"`
	BasePrice               decimal.Decimal `json:"base_price"`
	PricePerKm              decimal.Decimal `json:"price_per_km"`
	MinKm                   int             `json:"min_km"`
	WeekendSurchargePercent decimal.Decimal `json:"weekend_surcharge_percent"`
	NightSurchargePercent   decimal.Decimal `json:"night_surcharge_percent"`
}

// CoasterUpdate supports PATCH-style updates via key presence.
type CoasterUpdate struct {
	Name          *string `json:"name"`
	PlateNumber   *string `json:"plate_number"`
	Capacity      *int    `json:"capacity"`
	Model         *string `json:"model"`
	Color         *string `json:"color"`
	Status        *string `json:"status"`
	DriverName    *string `json:"driver_name"`
	DriverContact *string `json:"driver_contact"`
	Features      *string `json:"features"`
}
