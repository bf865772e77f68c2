package models

import "github.com/shopspring/decimal"

// AdminWalletID is the fixed primary key of the singleton platform wallet.
const AdminWalletID = 1

// AdminWallet is the platform ledger row. Balance collects system shares,
// processing fees and insurance premiums; VAT collects accrued VAT.
type AdminWallet struct {
	ID      int64
	Balance decimal.Decimal
	VAT     decimal.Decimal
}

// SystemBalance is an append-only audit row, one per settled booking.
type SystemBalance struct {
	ID        int64
	CompanyID int64
	Balance   decimal.Decimal
}

// PaymentFee is an append-only audit row for the processing-fee share.
type PaymentFee struct {
	ID        int64
	CompanyID int64
	BookingID int64
	Amount    decimal.Decimal
}

// Bima is the insurance record created during settlement when the booking
// carries a premium. Never mutated after creation.
type Bima struct {
	ID        int64
	BookingID int64
	StartDate string
	EndDate   string
	Amount    decimal.Decimal
	BimaVAT   decimal.Decimal
}
