package repositories

import (
	intdb "tiketi/internal/db"
	"tiketi/internal/domain/models"

	"github.com/shopspring/decimal"
)

// AuditRepository writes the append-only settlement records: one system
// balance row and one payment fees row per settled booking, plus the bima
// row when the booking carried insurance. Rows are inserted once and never
// updated or deleted.
type AuditRepository struct{}

func (r AuditRepository) InsertSystemBalance(q intdb.Execer, companyID int64, amount decimal.Decimal) error {
	_, err := q.Exec(`
		INSERT INTO system_balances (campany_id, balance, created_at)
		VALUES (?, ?, NOW())`,
		companyID, amount)
	return err
}

func (r AuditRepository) InsertPaymentFee(q intdb.Execer, companyID, bookingID int64, amount decimal.Decimal) error {
	_, err := q.Exec(`
		INSERT INTO payment_fees (campany_id, booking_id, amount, created_at)
		VALUES (?, ?, ?, NOW())`,
		companyID, bookingID, amount)
	return err
}

func (r AuditRepository) InsertBima(q intdb.Execer, b models.Bima) error {
	_, err := q.Exec(`
		INSERT INTO bimas (booking_id, start_date, end_date, amount, bima_vat, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())`,
		b.BookingID, b.StartDate, intdb.NullIfEmpty(b.EndDate), b.Amount, b.BimaVAT)
	return err
}
