package domain

import "github.com/shopspring/decimal"

// VATRate is the statutory VAT percentage applied to VAT-inclusive amounts.
const VATRate = 18

// ShareInput carries everything the split needs. Cancellation credit and
// vendor attribution are explicit here instead of being read from ambient
// request state.
type ShareInput struct {
	GrossAmount        decimal.Decimal
	OperatorBaseFare   decimal.Decimal
	InsurancePremium   decimal.Decimal
	CancellationCredit decimal.Decimal

	CompanyPercent decimal.Decimal

	HasVendor     bool
	VendorPercent decimal.Decimal
}

// ShareBreakdown is the result of one settlement split. All values are
// unrounded; callers round to TZS precision only when persisting.
type ShareBreakdown struct {
	// ServiceFees is the slice of the gross that is neither base fare nor
	// insurance: gross - baseFare - premium, before vendor carve-out.
	ServiceFees decimal.Decimal

	OperatorNetShare decimal.Decimal
	SystemShare      decimal.Decimal
	// PaymentProcessingFee is ServiceFees after the vendor service carve-out.
	PaymentProcessingFee decimal.Decimal

	VendorFeeShare     decimal.Decimal
	VendorServiceShare decimal.Decimal

	InsuranceVATAmount decimal.Decimal
}

var (
	hundred   = decimal.NewFromInt(100)
	vatRate   = decimal.NewFromInt(VATRate)
	vatDivide = decimal.NewFromInt(100 + VATRate)
)

// ComputeShares splits one gross payment across the operator company, the
// platform, the optional vendor, and insurance. The split is a waterfall:
// every step consumes the remainder left by the previous one.
func ComputeShares(in ShareInput) ShareBreakdown {
	var out ShareBreakdown

	out.ServiceFees = in.GrossAmount.Sub(in.OperatorBaseFare).Sub(in.InsurancePremium)

	operatorGross := in.OperatorBaseFare.Add(in.CancellationCredit)

	out.SystemShare = operatorGross.Mul(in.CompanyPercent).Div(hundred)
	out.OperatorNetShare = operatorGross.Sub(out.SystemShare)

	out.PaymentProcessingFee = out.ServiceFees

	if in.HasVendor {
		out.VendorFeeShare = out.SystemShare.Mul(in.VendorPercent).Div(hundred)
		out.SystemShare = out.SystemShare.Sub(out.VendorFeeShare)

		out.VendorServiceShare = out.PaymentProcessingFee.Mul(in.VendorPercent).Div(hundred)
		out.PaymentProcessingFee = out.PaymentProcessingFee.Sub(out.VendorServiceShare)
	}

	if in.InsurancePremium.IsPositive() {
		// Premiums are VAT-inclusive, so the VAT part is backed out at
		// rate/(100+rate) rather than applied on top.
		out.InsuranceVATAmount = in.InsurancePremium.Mul(vatRate).Div(vatDivide)
	}

	return out
}

// VendorTotal is the combined amount credited to the vendor balance.
func (b ShareBreakdown) VendorTotal() decimal.Decimal {
	return b.VendorFeeShare.Add(b.VendorServiceShare)
}
