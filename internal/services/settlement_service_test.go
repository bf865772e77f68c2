package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"tiketi/internal/domain"
	"tiketi/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func newSettlementService(t *testing.T) (SettlementService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	svc := SettlementService{
		DB:          db,
		BookingRepo: repositories.BookingRepository{DB: db},
		WalletRepo:  repositories.WalletRepository{},
		BalanceRepo: repositories.BalanceRepository{},
		AuditRepo:   repositories.AuditRepository{},
		RequestID:   "test-req",
	}
	return svc, mock, func() { _ = db.Close() }
}

var settlementColumns = []string{
	"id", "booking_code", "amount", "bus_fee", "bima_amount", "cancellation_credit",
	"travel_date", "insurance_date", "payment_status", "trans_status", "trans_token",
	"payment_method", "bus_id", "vender_id", "customer_name", "customer_phone",
	"customer_email", "campany_id", "campany_pct", "vender_pct",
}

type bookingRow struct {
	status     string
	amount     string
	busFee     string
	bima       string
	cancel     string
	vendorID   int64
	vendorPct  string
	companyPct string
}

func contextRows(r bookingRow) *sqlmock.Rows {
	return sqlmock.NewRows(settlementColumns).AddRow(
		int64(7), "BKTEST123", r.amount, r.busFee, r.bima, r.cancel,
		"2026-09-10", "2026-09-20", r.status, "", "", "",
		int64(3), r.vendorID, "Asha", "0754123456", "",
		int64(5), r.companyPct, r.vendorPct,
	)
}

func expectWalletLock(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`FROM admin_wallets`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "balance", "vat"}).AddRow(1, "0", "0"))
}

func TestProcessConfirmedPayment_Success(t *testing.T) {
	svc, mock, done := newSettlementService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)FROM bookings b.+FOR UPDATE`).WithArgs("BKTEST123").
		WillReturnRows(contextRows(bookingRow{
			status: "Unpaid", amount: "100000", busFee: "80000",
			bima: "0", cancel: "0", companyPct: "10", vendorPct: "0",
		}))
	expectWalletLock(mock)
	mock.ExpectExec(`UPDATE bookings`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO system_balances`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO payment_fees`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`UPDATE admin_wallets SET balance`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE admin_wallets SET balance`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO campany_balances`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	res, err := svc.ProcessConfirmedPayment(context.Background(), "TOKEN1", "BKTEST123")
	if err != nil {
		t.Fatalf("ProcessConfirmedPayment: %v", err)
	}
	if res.Status != SettlementCompleted {
		t.Fatalf("status = %q, want completed", res.Status)
	}
	if !res.OperatorNetShare.Equal(decimal.NewFromInt(72000)) {
		t.Fatalf("operator net = %s, want 72000", res.OperatorNetShare)
	}
	if !res.SystemShare.Equal(decimal.NewFromInt(8000)) {
		t.Fatalf("system share = %s, want 8000", res.SystemShare)
	}
	if !res.ProcessingFee.Equal(decimal.NewFromInt(20000)) {
		t.Fatalf("processing fee = %s, want 20000", res.ProcessingFee)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProcessConfirmedPayment_AlreadyPaidIsIdempotent(t *testing.T) {
	svc, mock, done := newSettlementService(t)
	defer done()

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery(`(?s)FROM bookings b.+FOR UPDATE`).WithArgs("BKTEST123").
			WillReturnRows(contextRows(bookingRow{
				status: "Paid", amount: "72000", busFee: "80000",
				bima: "0", cancel: "0", companyPct: "10", vendorPct: "0",
			}))
		mock.ExpectRollback()
	}

	for i := 0; i < 2; i++ {
		res, err := svc.ProcessConfirmedPayment(context.Background(), "TOKEN1", "BKTEST123")
		if err != nil {
			t.Fatalf("call %d: unexpected error %v", i, err)
		}
		if res.Status != SettlementAlreadyProcessed {
			t.Fatalf("call %d: status = %q, want already_processed", i, res.Status)
		}
	}

	// No Exec expectations were registered: any ledger write would have
	// failed the mock.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProcessConfirmedPayment_MissingBooking(t *testing.T) {
	svc, mock, done := newSettlementService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)FROM bookings b.+FOR UPDATE`).WithArgs("NOPE").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.ProcessConfirmedPayment(context.Background(), "TOKEN1", "NOPE")
	if !domain.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProcessConfirmedPayment_MissingWalletIsFatal(t *testing.T) {
	svc, mock, done := newSettlementService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)FROM bookings b.+FOR UPDATE`).WithArgs("BKTEST123").
		WillReturnRows(contextRows(bookingRow{
			status: "Unpaid", amount: "100000", busFee: "80000",
			bima: "0", cancel: "0", companyPct: "10", vendorPct: "0",
		}))
	mock.ExpectQuery(`FROM admin_wallets`).WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.ProcessConfirmedPayment(context.Background(), "TOKEN1", "BKTEST123")
	if !domain.IsInternal(err) {
		t.Fatalf("err = %v, want InternalError for missing wallet", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProcessConfirmedPayment_MidUnitFailureRollsBack(t *testing.T) {
	svc, mock, done := newSettlementService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)FROM bookings b.+FOR UPDATE`).WithArgs("BKTEST123").
		WillReturnRows(contextRows(bookingRow{
			status: "Unpaid", amount: "100000", busFee: "80000",
			bima: "0", cancel: "0", companyPct: "10", vendorPct: "0",
		}))
	expectWalletLock(mock)
	// Booking flips to Paid in-transaction...
	mock.ExpectExec(`UPDATE bookings`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// ...then the audit insert fails before the company is credited.
	mock.ExpectExec(`INSERT INTO system_balances`).
		WillReturnError(fmt.Errorf("disk full"))
	mock.ExpectRollback()

	_, err := svc.ProcessConfirmedPayment(context.Background(), "TOKEN1", "BKTEST123")
	if !domain.IsInternal(err) {
		t.Fatalf("err = %v, want InternalError", err)
	}
	// The rollback expectation above is the atomicity check: the booking
	// update never commits, so readers keep seeing Unpaid.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProcessConfirmedPayment_VendorAndInsurance(t *testing.T) {
	svc, mock, done := newSettlementService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)FROM bookings b.+FOR UPDATE`).WithArgs("BKTEST123").
		WillReturnRows(contextRows(bookingRow{
			status: "Unpaid", amount: "100118", busFee: "80000",
			bima: "118", cancel: "0", vendorID: 9,
			companyPct: "10", vendorPct: "25",
		}))
	expectWalletLock(mock)
	mock.ExpectExec(`INSERT INTO bimas`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`UPDATE admin_wallets SET balance`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE admin_wallets SET vat`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE bookings`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO system_balances`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO payment_fees`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`UPDATE admin_wallets SET balance`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE admin_wallets SET balance`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO campany_balances`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO vender_balances`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	res, err := svc.ProcessConfirmedPayment(context.Background(), "TOKEN2", "BKTEST123")
	if err != nil {
		t.Fatalf("ProcessConfirmedPayment: %v", err)
	}

	// gross 100118, fare 80000, premium 118: serviceFees = 20000.
	// system = 8000, vendor takes 25% of both pools: 2000 + 5000.
	if !res.SystemShare.Equal(decimal.NewFromInt(6000)) {
		t.Fatalf("system share = %s, want 6000 after vendor carve", res.SystemShare)
	}
	if !res.ProcessingFee.Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("processing fee = %s, want 15000 after vendor carve", res.ProcessingFee)
	}
	if !res.VendorShare.Equal(decimal.NewFromInt(7000)) {
		t.Fatalf("vendor share = %s, want 7000", res.VendorShare)
	}
	if !res.InsuranceVATAmount.Equal(decimal.NewFromInt(18)) {
		t.Fatalf("insurance VAT = %s, want 18", res.InsuranceVATAmount)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
