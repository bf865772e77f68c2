package repositories

import (
	"database/sql"
	"errors"

	intdb "tiketi/internal/db"
	"tiketi/internal/domain"
	"tiketi/internal/domain/models"

	"github.com/shopspring/decimal"
)

// WalletRepository owns the singleton admin wallet row. All mutations are
// atomic in-database increments executed on the caller's transaction; the
// wallet row is never read-then-written from Go.
type WalletRepository struct{}

// GetAdminWalletForUpdate loads and locks the platform wallet. A missing
// row is a provisioning fault, not a transient error.
func (r WalletRepository) GetAdminWalletForUpdate(q intdb.Execer) (models.AdminWallet, error) {
	var w models.AdminWallet
	err := q.QueryRow(`
		SELECT id, COALESCE(balance,0), COALESCE(vat,0)
		FROM admin_wallets
		WHERE id=?
		LIMIT 1
		FOR UPDATE`, models.AdminWalletID).Scan(&w.ID, &w.Balance, &w.VAT)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return w, domain.InternalError{Msg: "admin wallet not provisioned", Err: err}
		}
		return w, err
	}
	return w, nil
}

// IncrementBalance adds delta to the platform balance.
func (r WalletRepository) IncrementBalance(q intdb.Execer, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	_, err := q.Exec(`UPDATE admin_wallets SET balance = balance + ? WHERE id=?`,
		delta, models.AdminWalletID)
	return err
}

// IncrementVAT accrues VAT on the wallet.
func (r WalletRepository) IncrementVAT(q intdb.Execer, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	_, err := q.Exec(`UPDATE admin_wallets SET vat = vat + ? WHERE id=?`,
		delta, models.AdminWalletID)
	return err
}
