package services

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"tiketi/internal/domain"
	"tiketi/internal/repositories"
)

func pricingServiceWithMock(t *testing.T) (PricingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	svc := PricingService{
		CoasterRepo: repositories.CoasterRepository{DB: db},
		PricingRepo: repositories.PricingRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func expectCoaster(mock sqlmock.Sqlmock, id int64, status string) {
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "name", "plate_number", "capacity", "model", "color",
		"status", "driver_name", "driver_contact", "features",
		"latitude", "longitude", "last_location_update",
	}).AddRow(id, 2, "Coaster One", "T123ABC", 30, "", "", status, "", "", "", 0, 0, "")
	mock.ExpectQuery(`(?s)FROM coasters WHERE id=\?`).WithArgs(id).WillReturnRows(rows)
}

func expectRateCard(mock sqlmock.Sqlmock, coasterID int64) {
	rows := sqlmock.NewRows([]string{
		"id", "coaster_id", "base_price", "price_per_km", "min_km",
		"weekend_surcharge_percent", "night_surcharge_percent",
	}).AddRow(1, coasterID, "50000", "2000", 10, "15", "20")
	mock.ExpectQuery(`(?s)FROM coaster_pricing.+coaster_id=\?`).WithArgs(coasterID).WillReturnRows(rows)
}

func TestQuoteTripWeekdayExplicitDistance(t *testing.T) {
	svc, mock, done := pricingServiceWithMock(t)
	defer done()

	expectCoaster(mock, 4, "available")
	expectRateCard(mock, 4)

	quote, err := svc.QuoteTrip(QuoteRequest{
		CoasterID:  4,
		DistanceKm: decimal.RequireFromString("15"),
		HireDate:   "2026-09-02",
		HireTime:   "10:00",
	})
	if err != nil {
		t.Fatalf("QuoteTrip: %v", err)
	}

	// base 50000 + 15km * 2000, Wednesday daytime, no surcharge.
	if !quote.TotalAmount.Equal(decimal.RequireFromString("80000")) {
		t.Fatalf("total = %s", quote.TotalAmount)
	}
	if len(quote.Surcharges) != 0 {
		t.Fatalf("unexpected surcharges %v", quote.Surcharges)
	}
	if quote.TotalDisplay != "TZS 80,000" {
		t.Fatalf("display = %q", quote.TotalDisplay)
	}
}

func TestQuoteTripMinKmAndWeekendNight(t *testing.T) {
	svc, mock, done := pricingServiceWithMock(t)
	defer done()

	expectCoaster(mock, 4, "available")
	expectRateCard(mock, 4)

	// 3km billed as the 10km minimum; Saturday 19:00 stacks both surcharges.
	quote, err := svc.QuoteTrip(QuoteRequest{
		CoasterID:  4,
		DistanceKm: decimal.RequireFromString("3"),
		HireDate:   "2026-09-05",
		HireTime:   "19:00",
	})
	if err != nil {
		t.Fatalf("QuoteTrip: %v", err)
	}

	if !quote.BillableKm.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("billable = %s", quote.BillableKm)
	}
	// subtotal 50000 + 20000 = 70000; 35% stacked surcharge = 24500.
	if !quote.SurchargeAmount.Equal(decimal.RequireFromString("24500")) {
		t.Fatalf("surcharge = %s", quote.SurchargeAmount)
	}
	if !quote.TotalAmount.Equal(decimal.RequireFromString("94500")) {
		t.Fatalf("total = %s", quote.TotalAmount)
	}
	if len(quote.Surcharges) != 2 {
		t.Fatalf("surcharges = %v", quote.Surcharges)
	}
}

func TestQuoteTripNeedsDistanceOrCoords(t *testing.T) {
	svc, mock, done := pricingServiceWithMock(t)
	defer done()

	expectCoaster(mock, 4, "available")
	expectRateCard(mock, 4)

	_, err := svc.QuoteTrip(QuoteRequest{
		CoasterID: 4,
		HireDate:  "2026-09-02",
		HireTime:  "10:00",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestQuoteTripBadDateRejected(t *testing.T) {
	svc, mock, done := pricingServiceWithMock(t)
	defer done()

	expectCoaster(mock, 4, "available")
	expectRateCard(mock, 4)

	_, err := svc.QuoteTrip(QuoteRequest{
		CoasterID:  4,
		DistanceKm: decimal.RequireFromString("15"),
		HireDate:   "05/09/2026",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}
