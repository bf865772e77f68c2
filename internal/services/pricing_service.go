package services

import (
	"fmt"

	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
	"tiketi/internal/repositories"
	"tiketi/internal/utils"

	"github.com/shopspring/decimal"
)

// QuoteRequest asks for a price on one trip. Distance can come in
// explicitly or be derived from the coordinate pairs.
type QuoteRequest struct {
	CoasterID int64 `json:"coaster_id"`

	DistanceKm decimal.Decimal `json:"distance_km"`

	PickupLatitude   float64 `json:"pickup_latitude"`
	PickupLongitude  float64 `json:"pickup_longitude"`
	DropoffLatitude  float64 `json:"dropoff_latitude"`
	DropoffLongitude float64 `json:"dropoff_longitude"`

	HireDate string `json:"hire_date"`
	HireTime string `json:"hire_time"`
}

// Quote is the priced answer, echoing the inputs that shaped it.
type Quote struct {
	CoasterID       int64           `json:"coaster_id"`
	DistanceKm      decimal.Decimal `json:"distance_km"`
	BillableKm      decimal.Decimal `json:"billable_km"`
	BasePrice       decimal.Decimal `json:"base_price"`
	PricePerKm      decimal.Decimal `json:"price_per_km"`
	KmAmount        decimal.Decimal `json:"km_amount"`
	SurchargePct    decimal.Decimal `json:"surcharge_percent"`
	Surcharges      []string        `json:"surcharges"`
	SurchargeAmount decimal.Decimal `json:"surcharge_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	TotalDisplay    string          `json:"total_display"`
}

type PricingService struct {
	CoasterRepo repositories.CoasterRepository
	PricingRepo repositories.PricingRepository
	RequestID   string
}

// QuoteTrip prices a hire without creating anything.
func (s PricingService) QuoteTrip(req QuoteRequest) (Quote, error) {
	var q Quote

	coaster, err := s.CoasterRepo.GetByID(req.CoasterID)
	if err != nil {
		return q, err
	}
	pricing, err := s.PricingRepo.GetByCoaster(coaster.ID)
	if err != nil {
		return q, err
	}

	distance, err := resolveDistance(req)
	if err != nil {
		return q, err
	}

	hireDate, err := utils.ParseDate(req.HireDate)
	if err != nil {
		return q, domain.ValidationError{Field: "hire_date", Msg: "expected YYYY-MM-DD"}
	}
	hireHour := utils.ParseHour(req.HireTime)

	quote := domain.ComputeHirePrice(domain.HirePricing{
		BasePrice:               pricing.BasePrice,
		PricePerKm:              pricing.PricePerKm,
		MinKm:                   pricing.MinKm,
		WeekendSurchargePercent: pricing.WeekendSurchargePercent,
		NightSurchargePercent:   pricing.NightSurchargePercent,
	}, distance, hireDate, hireHour)

	utils.LogEvent(s.RequestID, "pricing", "quote",
		fmt.Sprintf("coaster_id=%d distance=%s total=%s", coaster.ID, quote.DistanceKm, quote.TotalAmount))

	return Quote{
		CoasterID:       coaster.ID,
		DistanceKm:      quote.DistanceKm,
		BillableKm:      quote.BillableKm,
		BasePrice:       quote.BasePrice,
		PricePerKm:      quote.PricePerKm,
		KmAmount:        quote.KmAmount,
		SurchargePct:    quote.SurchargePct,
		Surcharges:      quote.SurchargeLabels,
		SurchargeAmount: quote.SurchargeAmount,
		TotalAmount:     quote.TotalAmount,
		TotalDisplay:    utils.FormatTZS(quote.TotalAmount),
	}, nil
}

// SetRateCard stores the coaster's pricing after checking the coaster
// exists.
func (s PricingService) SetRateCard(p models.CoasterPricing) error {
	if _, err := s.CoasterRepo.GetByID(p.CoasterID); err != nil {
		return err
	}
	if err := s.PricingRepo.Upsert(p); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "pricing", "rate_card",
		fmt.Sprintf("coaster_id=%d base=%s per_km=%s", p.CoasterID, p.BasePrice, p.PricePerKm))
	return nil
}

func resolveDistance(req QuoteRequest) (decimal.Decimal, error) {
	if req.DistanceKm.IsPositive() {
		return req.DistanceKm, nil
	}
	if req.PickupLatitude == 0 && req.PickupLongitude == 0 &&
		req.DropoffLatitude == 0 && req.DropoffLongitude == 0 {
		return decimal.Zero, domain.ValidationError{
			Field: "distance_km",
			Msg:   "provide distance_km or pickup and dropoff coordinates",
		}
	}
	km := utils.HaversineKm(req.PickupLatitude, req.PickupLongitude,
		req.DropoffLatitude, req.DropoffLongitude)
	return decimal.NewFromFloat(km), nil
}
