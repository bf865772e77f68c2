package services

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "tiketi/internal/config"
	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
	"tiketi/internal/repositories"
	"tiketi/internal/utils"

	"github.com/shopspring/decimal"
)

// Settlement outcome statuses, distinguishable by the caller.
const (
	SettlementCompleted        = "completed"
	SettlementAlreadyProcessed = "already_processed"
)

// SettlementResult is what the coordinator hands back instead of the old
// redirect objects: the caller decides how to present it.
type SettlementResult struct {
	Status      string `json:"status"`
	BookingID   int64  `json:"booking_id"`
	BookingCode string `json:"booking_code"`
	TransToken  string `json:"trans_token"`

	OperatorNetShare   decimal.Decimal `json:"operator_net_share"`
	SystemShare        decimal.Decimal `json:"system_share"`
	ProcessingFee      decimal.Decimal `json:"processing_fee"`
	VendorShare        decimal.Decimal `json:"vendor_share"`
	InsurancePremium   decimal.Decimal `json:"insurance_premium"`
	InsuranceVATAmount decimal.Decimal `json:"insurance_vat_amount"`
}

// SettlementService settles one confirmed payment: it splits the gross
// amount across admin wallet, company balance and vendor balance, writes
// the audit rows, and flips the booking to Paid, all in one transaction.
type SettlementService struct {
	DB *sql.DB

	BookingRepo repositories.BookingRepository
	WalletRepo  repositories.WalletRepository
	BalanceRepo repositories.BalanceRepository
	AuditRepo   repositories.AuditRepository

	RequestID string
}

func (s SettlementService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// ProcessConfirmedPayment runs the settlement atomic unit for the booking
// identified by bookingCode. transToken is the gateway's transaction
// reference and is stored on the booking.
//
// The duplicate-callback guard lives inside the transaction: the booking
// row is locked first, and only then is its payment status inspected, so
// two concurrent callbacks cannot both observe Unpaid. A booking that is
// already Paid short-circuits to an already-processed result with zero
// ledger mutation. Any failure mid-unit rolls everything back; there is no
// automatic retry; the gateway's callback retry or manual reconciliation
// re-drives it.
func (s SettlementService) ProcessConfirmedPayment(ctx context.Context, transToken, bookingCode string) (SettlementResult, error) {
	var res SettlementResult

	if bookingCode == "" {
		return res, domain.ValidationError{Field: "booking_code", Msg: "must not be empty"}
	}

	tx, err := s.db().BeginTx(ctx, nil)
	if err != nil {
		return res, domain.InternalError{Msg: "settlement failed", Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	sc, err := s.BookingRepo.GetSettlementContextForUpdate(tx, bookingCode)
	if err != nil {
		return res, err
	}
	booking := sc.Booking

	res.BookingID = booking.ID
	res.BookingCode = booking.BookingCode

	if booking.PaymentStatus != models.PaymentStatusUnpaid {
		utils.LogEvent(s.RequestID, "settlement", "duplicate",
			fmt.Sprintf("booking_id=%d already processed", booking.ID))
		res.Status = SettlementAlreadyProcessed
		res.TransToken = booking.TransToken
		return res, nil
	}

	if err := s.settle(tx, sc, transToken, &res); err != nil {
		utils.LogEvent(s.RequestID, "settlement", "failed",
			fmt.Sprintf("booking_id=%d trans_token=%s err=%v", booking.ID, transToken, err))
		if domain.IsInternal(err) || domain.IsNotFound(err) || domain.IsValidation(err) {
			return res, err
		}
		return res, domain.InternalError{Msg: "settlement failed", Err: err}
	}

	if err := tx.Commit(); err != nil {
		utils.LogEvent(s.RequestID, "settlement", "failed",
			fmt.Sprintf("booking_id=%d trans_token=%s commit err=%v", booking.ID, transToken, err))
		return res, domain.InternalError{Msg: "settlement failed", Err: err}
	}
	committed = true

	utils.LogEvent(s.RequestID, "settlement", "completed",
		fmt.Sprintf("booking_id=%d campany_id=%d operator_net=%s system=%s fees=%s vendor=%s bima=%s",
			booking.ID, sc.CompanyID,
			res.OperatorNetShare, res.SystemShare, res.ProcessingFee,
			res.VendorShare, res.InsurancePremium))

	res.Status = SettlementCompleted
	res.TransToken = transToken
	return res, nil
}

// settle performs steps 1-8 of the atomic unit on an open transaction.
// The caller commits.
func (s SettlementService) settle(tx *sql.Tx, sc models.SettlementContext, transToken string, res *SettlementResult) error {
	booking := sc.Booking

	// Wallet must exist before any money moves; absence is a provisioning
	// fault and aborts the whole unit.
	if _, err := s.WalletRepo.GetAdminWalletForUpdate(tx); err != nil {
		return err
	}

	shares := domain.ComputeShares(domain.ShareInput{
		GrossAmount:        booking.Amount,
		OperatorBaseFare:   booking.BusFee,
		InsurancePremium:   booking.BimaAmount,
		CancellationCredit: booking.CancellationCredit,
		CompanyPercent:     sc.CompanyPercent,
		HasVendor:          booking.HasVendor(),
		VendorPercent:      sc.VendorPercent,
	})

	// Rounding happens here, at the boundary, never inside the waterfall.
	operatorNet := utils.RoundTZS(shares.OperatorNetShare)
	systemShare := utils.RoundTZS(shares.SystemShare)
	processingFee := utils.RoundTZS(shares.PaymentProcessingFee)
	vendorShare := utils.RoundTZS(shares.VendorTotal())
	insuranceVAT := utils.RoundTZS(shares.InsuranceVATAmount)

	if booking.BimaAmount.IsPositive() {
		err := s.AuditRepo.InsertBima(tx, models.Bima{
			BookingID: booking.ID,
			StartDate: booking.TravelDate,
			EndDate:   booking.InsuranceDate,
			Amount:    booking.BimaAmount,
			BimaVAT:   insuranceVAT,
		})
		if err != nil {
			return err
		}
		if err := s.WalletRepo.IncrementBalance(tx, booking.BimaAmount); err != nil {
			return err
		}
		if err := s.WalletRepo.IncrementVAT(tx, insuranceVAT); err != nil {
			return err
		}
	}

	if err := s.BookingRepo.ApplySettlement(tx, booking.ID, transToken, systemShare, processingFee, operatorNet); err != nil {
		return err
	}
	if booking.CancellationCredit.IsPositive() {
		if err := s.BookingRepo.ClearCancellationCredit(tx, booking.ID); err != nil {
			return err
		}
	}

	if err := s.AuditRepo.InsertSystemBalance(tx, sc.CompanyID, systemShare); err != nil {
		return err
	}
	if err := s.AuditRepo.InsertPaymentFee(tx, sc.CompanyID, booking.ID, processingFee); err != nil {
		return err
	}

	if err := s.WalletRepo.IncrementBalance(tx, systemShare); err != nil {
		return err
	}
	if err := s.WalletRepo.IncrementBalance(tx, processingFee); err != nil {
		return err
	}

	if err := s.BalanceRepo.IncrementCompanyBalance(tx, sc.CompanyID, operatorNet); err != nil {
		return err
	}

	if booking.HasVendor() && vendorShare.IsPositive() {
		if err := s.BalanceRepo.IncrementVendorBalance(tx, booking.VendorID, vendorShare); err != nil {
			return err
		}
	}

	res.OperatorNetShare = operatorNet
	res.SystemShare = systemShare
	res.ProcessingFee = processingFee
	res.VendorShare = vendorShare
	res.InsurancePremium = booking.BimaAmount
	res.InsuranceVATAmount = insuranceVAT
	return nil
}
