package repositories

import (
	"database/sql"
	"errors"

	intconfig "tiketi/internal/config"
	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
)

type PricingRepository struct {
	DB *sql.DB
}

func (r PricingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByCoaster loads the rate card for one coaster.
func (r PricingRepository) GetByCoaster(coasterID int64) (models.CoasterPricing, error) {
	var p models.CoasterPricing
	if coasterID <= 0 {
		return p, domain.ValidationError{Field: "coaster_id", Msg: "must be positive"}
	}

	err := r.db().QueryRow(`
		SELECT id,
		       coaster_id,
		       COALESCE(base_price,0),
		       COALESCE(price_per_km,0),
		       COALESCE(min_km,0),
		       COALESCE(weekend_surcharge_percent,0),
		       COALESCE(night_surcharge_percent,0)
		FROM coaster_pricing
		WHERE coaster_id=?
		LIMIT 1`, coasterID).Scan(
		&p.ID,
		&p.CoasterID,
		&p.BasePrice,
		&p.PricePerKm,
		&p.MinKm,
		&p.WeekendSurchargePercent,
		&p.NightSurchargePercent,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, domain.NotFoundError{Resource: "coaster_pricing", Err: err}
		}
		return p, err
	}
	return p, nil
}

// Upsert writes the rate card, one row per coaster.
func (r PricingRepository) Upsert(p models.CoasterPricing) error {
	if p.CoasterID <= 0 {
		return domain.ValidationError{Field: "coaster_id", Msg: "must be positive"}
	}
	if p.BasePrice.IsNegative() || p.PricePerKm.IsNegative() {
		return domain.ValidationError{Field: "pricing", Msg: "prices must not be negative"}
	}
	if p.MinKm < 0 {
		return domain.ValidationError{Field: "min_km", Msg: "must not be negative"}
	}

	_, err := r.db().Exec(`
		INSERT INTO coaster_pricing
			(coaster_id, base_price, price_per_km, min_km,
			 weekend_surcharge_percent, night_surcharge_percent, created_at, updated_at)
		VALUES (?,?,?,?,?,?,NOW(),NOW())
		ON DUPLICATE KEY UPDATE
			base_price=VALUES(base_price),
			price_per_km=VALUES(price_per_km),
			min_km=VALUES(min_km),
			weekend_surcharge_percent=VALUES(weekend_surcharge_percent),
			night_surcharge_percent=VALUES(night_surcharge_percent),
			updated_at=NOW()`,
		p.CoasterID, p.BasePrice, p.PricePerKm, p.MinKm,
		p.WeekendSurchargePercent, p.NightSurchargePercent)
	return err
}
