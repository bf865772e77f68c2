package repositories

import (
	intdb "tiketi/internal/db"
	"tiketi/internal/domain"

	"github.com/shopspring/decimal"
)

// BalanceRepository holds the per-company and per-vendor running balances.
// Increments are atomic in-database adds; the upsert form covers companies
// or vendors whose balance row was never seeded.
type BalanceRepository struct{}

func (r BalanceRepository) IncrementCompanyBalance(q intdb.Execer, companyID int64, delta decimal.Decimal) error {
	if companyID <= 0 {
		return domain.ValidationError{Field: "campany_id", Msg: "must be positive"}
	}
	_, err := q.Exec(`
		INSERT INTO campany_balances (campany_id, amount)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE amount = amount + VALUES(amount)`,
		companyID, delta)
	return err
}

func (r BalanceRepository) IncrementVendorBalance(q intdb.Execer, vendorID int64, delta decimal.Decimal) error {
	if vendorID <= 0 {
		return domain.ValidationError{Field: "vender_id", Msg: "must be positive"}
	}
	_, err := q.Exec(`
		INSERT INTO vender_balances (vender_id, amount)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE amount = amount + VALUES(amount)`,
		vendorID, delta)
	return err
}
