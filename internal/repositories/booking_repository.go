package repositories

import (
	"database/sql"
	"errors"

	intconfig "tiketi/internal/config"
	intdb "tiketi/internal/db"
	"tiketi/internal/domain"
	"tiketi/internal/domain/models"

	"github.com/shopspring/decimal"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const settlementContextQuery = `
	SELECT b.id,
	       COALESCE(b.booking_code,''),
	       COALESCE(b.amount,0),
	       COALESCE(b.bus_fee,0),
	       COALESCE(b.bima_amount,0),
	       COALESCE(b.cancellation_credit,0),
	       COALESCE(b.travel_date,''),
	       COALESCE(b.insurance_date,''),
	       COALESCE(b.payment_status,''),
	       COALESCE(b.trans_status,''),
	       COALESCE(b.trans_token,''),
	       COALESCE(b.payment_method,''),
	       b.bus_id,
	       COALESCE(b.vender_id,0),
	       COALESCE(b.customer_name,''),
	       COALESCE(b.customer_phone,''),
	       COALESCE(b.customer_email,''),
	       c.id,
	       COALESCE(c.percentage,0),
	       COALESCE(v.percentage,0)
	FROM bookings b
	JOIN buses bus ON bus.id = b.bus_id
	JOIN campanies c ON c.id = bus.campany_id
	LEFT JOIN venders v ON v.id = b.vender_id
	WHERE b.booking_code=?
	LIMIT 1`

// GetSettlementContextForUpdate loads the booking plus the commission rates
// the split needs, locking the booking row for the life of the enclosing
// transaction. The duplicate-settlement guard must read the status through
// this lock, never through a plain SELECT.
func (r BookingRepository) GetSettlementContextForUpdate(q intdb.Execer, bookingCode string) (models.SettlementContext, error) {
	var sc models.SettlementContext
	if bookingCode == "" {
		return sc, domain.ValidationError{Field: "booking_code", Msg: "must not be empty"}
	}

	b := &sc.Booking
	err := q.QueryRow(settlementContextQuery+" FOR UPDATE", bookingCode).Scan(
		&b.ID,
		&b.BookingCode,
		&b.Amount,
		&b.BusFee,
		&b.BimaAmount,
		&b.CancellationCredit,
		&b.TravelDate,
		&b.InsuranceDate,
		&b.PaymentStatus,
		&b.TransStatus,
		&b.TransToken,
		&b.PaymentMethod,
		&b.BusID,
		&b.VendorID,
		&b.CustomerName,
		&b.CustomerPhone,
		&b.CustomerEmail,
		&sc.CompanyID,
		&sc.CompanyPercent,
		&sc.VendorPercent,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sc, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return sc, err
	}
	return sc, nil
}

// GetByCode fetches a booking outside any settlement lock, for payment
// initiation and receipts.
func (r BookingRepository) GetByCode(bookingCode string) (models.Booking, error) {
	sc, err := r.GetSettlementContextForUpdateless(bookingCode)
	return sc.Booking, err
}

// GetSettlementContextForUpdateless is the unlocked variant of the context
// read, usable on the shared connection.
func (r BookingRepository) GetSettlementContextForUpdateless(bookingCode string) (models.SettlementContext, error) {
	var sc models.SettlementContext
	if bookingCode == "" {
		return sc, domain.ValidationError{Field: "booking_code", Msg: "must not be empty"}
	}

	b := &sc.Booking
	err := r.db().QueryRow(settlementContextQuery, bookingCode).Scan(
		&b.ID,
		&b.BookingCode,
		&b.Amount,
		&b.BusFee,
		&b.BimaAmount,
		&b.CancellationCredit,
		&b.TravelDate,
		&b.InsuranceDate,
		&b.PaymentStatus,
		&b.TransStatus,
		&b.TransToken,
		&b.PaymentMethod,
		&b.BusID,
		&b.VendorID,
		&b.CustomerName,
		&b.CustomerPhone,
		&b.CustomerEmail,
		&sc.CompanyID,
		&sc.CompanyPercent,
		&sc.VendorPercent,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sc, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return sc, err
	}
	return sc, nil
}

// ApplySettlement marks the booking Paid and stores the computed shares.
// The amount column keeps the operator's retained net, matching how the
// ledger reads it afterwards; the audit rows keep the other shares.
func (r BookingRepository) ApplySettlement(q intdb.Execer, bookingID int64, transToken string, fee, service, operatorNet decimal.Decimal) error {
	if bookingID <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "must be positive"}
	}
	_, err := q.Exec(`
		UPDATE bookings
		SET payment_status=?,
		    trans_status='success',
		    trans_token=?,
		    fee=?,
		    service=?,
		    amount=?,
		    payment_method='clickpesa',
		    updated_at=NOW()
		WHERE id=?`,
		models.PaymentStatusPaid, transToken, fee, service, operatorNet, bookingID)
	return err
}

// ClearCancellationCredit zeroes the credit after it has been folded into
// the operator pool, inside the same transaction.
func (r BookingRepository) ClearCancellationCredit(q intdb.Execer, bookingID int64) error {
	_, err := q.Exec(`UPDATE bookings SET cancellation_credit=0 WHERE id=?`, bookingID)
	return err
}
