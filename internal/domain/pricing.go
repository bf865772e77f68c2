package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Default surcharge percentages applied when a coaster has no override.
const (
	DefaultWeekendSurchargePercent = 15
	DefaultNightSurchargePercent   = 20
)

// HirePricing is the rate card attached to one coaster.
type HirePricing struct {
	BasePrice               decimal.Decimal
	PricePerKm              decimal.Decimal
	MinKm                   int
	WeekendSurchargePercent decimal.Decimal
	NightSurchargePercent   decimal.Decimal
}

// HireQuote is the priced breakdown for one special-hire trip.
type HireQuote struct {
	DistanceKm      decimal.Decimal
	BillableKm      decimal.Decimal
	BasePrice       decimal.Decimal
	PricePerKm      decimal.Decimal
	KmAmount        decimal.Decimal
	SurchargePct    decimal.Decimal
	SurchargeLabels []string
	SurchargeAmount decimal.Decimal
	TotalAmount     decimal.Decimal
}

// ComputeHirePrice prices a trip: base + per-km over the billable distance,
// then weekend and night surcharges stack additively on the subtotal.
// Night window is 18:00 through 05:59.
func ComputeHirePrice(p HirePricing, distanceKm decimal.Decimal, hireDate time.Time, hireHour int) HireQuote {
	billable := distanceKm
	minKm := decimal.NewFromInt(int64(p.MinKm))
	if billable.LessThan(minKm) {
		billable = minKm
	}

	kmAmount := billable.Mul(p.PricePerKm)

	surchargePct := decimal.Zero
	labels := []string{}

	switch hireDate.Weekday() {
	case time.Saturday, time.Sunday:
		surchargePct = surchargePct.Add(p.WeekendSurchargePercent)
		labels = append(labels, "Weekend")
	}

	if hireHour >= 18 || hireHour < 6 {
		surchargePct = surchargePct.Add(p.NightSurchargePercent)
		labels = append(labels, "Night")
	}

	subtotal := p.BasePrice.Add(kmAmount)
	surchargeAmount := subtotal.Mul(surchargePct).Div(hundred)

	return HireQuote{
		DistanceKm:      distanceKm,
		BillableKm:      billable,
		BasePrice:       p.BasePrice.Round(2),
		PricePerKm:      p.PricePerKm.Round(2),
		KmAmount:        kmAmount.Round(2),
		SurchargePct:    surchargePct.Round(2),
		SurchargeLabels: labels,
		SurchargeAmount: surchargeAmount.Round(2),
		TotalAmount:     subtotal.Add(surchargeAmount).Round(2),
	}
}
