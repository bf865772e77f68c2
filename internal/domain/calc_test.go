package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestComputeShares_NoVendorScenario(t *testing.T) {
	out := ComputeShares(ShareInput{
		GrossAmount:      dec(100_000),
		OperatorBaseFare: dec(80_000),
		CompanyPercent:   dec(10),
	})

	if !out.SystemShare.Equal(dec(8_000)) {
		t.Fatalf("system share = %s, want 8000", out.SystemShare)
	}
	if !out.OperatorNetShare.Equal(dec(72_000)) {
		t.Fatalf("operator net = %s, want 72000", out.OperatorNetShare)
	}
	if !out.ServiceFees.Equal(dec(20_000)) {
		t.Fatalf("service fees = %s, want 20000", out.ServiceFees)
	}
	if !out.PaymentProcessingFee.Equal(dec(20_000)) {
		t.Fatalf("processing fee = %s, want full service fees without vendor", out.PaymentProcessingFee)
	}
	if !out.VendorTotal().IsZero() {
		t.Fatalf("vendor total should be zero, got %s", out.VendorTotal())
	}
}

func TestComputeShares_GrossReconstruction(t *testing.T) {
	cases := []struct {
		name               string
		gross, fare, prem  int64
		companyPct, vendor int64
		hasVendor          bool
	}{
		{"plain", 100_000, 80_000, 0, 10, 0, false},
		{"with insurance", 118_000, 80_000, 11_800, 10, 0, false},
		{"with vendor", 100_000, 80_000, 0, 10, 25, true},
		{"vendor and insurance", 150_000, 90_000, 5_900, 12, 40, true},
		{"zero fare", 50_000, 0, 0, 15, 0, false},
		{"full fare", 80_000, 80_000, 0, 10, 50, true},
	}

	for _, tc := range cases {
		in := ShareInput{
			GrossAmount:      dec(tc.gross),
			OperatorBaseFare: dec(tc.fare),
			InsurancePremium: dec(tc.prem),
			CompanyPercent:   dec(tc.companyPct),
			HasVendor:        tc.hasVendor,
			VendorPercent:    dec(tc.vendor),
		}
		out := ComputeShares(in)

		// Every share summed back together must equal gross minus premium.
		sum := out.OperatorNetShare.
			Add(out.SystemShare).
			Add(out.PaymentProcessingFee).
			Add(out.VendorFeeShare).
			Add(out.VendorServiceShare)
		want := dec(tc.gross).Sub(dec(tc.prem))
		if !sum.Equal(want) {
			t.Fatalf("%s: shares sum to %s, want %s", tc.name, sum, want)
		}
	}
}

func TestComputeShares_VendorNeverExceedsPools(t *testing.T) {
	for pct := int64(0); pct <= 100; pct += 5 {
		in := ShareInput{
			GrossAmount:      dec(200_000),
			OperatorBaseFare: dec(150_000),
			CompanyPercent:   dec(10),
			HasVendor:        true,
			VendorPercent:    dec(pct),
		}
		out := ComputeShares(in)

		available := out.SystemShare.Add(out.ServiceFees)
		carved := out.VendorTotal()
		if carved.GreaterThan(available.Add(carved)) {
			t.Fatalf("pct=%d: vendor carved %s out of %s", pct, carved, available.Add(carved))
		}
		if out.VendorFeeShare.IsNegative() || out.VendorServiceShare.IsNegative() {
			t.Fatalf("pct=%d: negative vendor share", pct)
		}
		if out.SystemShare.IsNegative() || out.PaymentProcessingFee.IsNegative() {
			t.Fatalf("pct=%d: vendor carve drove a pool negative", pct)
		}
	}
}

func TestComputeShares_InsuranceVATBackCalculation(t *testing.T) {
	out := ComputeShares(ShareInput{
		GrossAmount:      dec(200_000),
		OperatorBaseFare: dec(80_000),
		InsurancePremium: dec(118),
		CompanyPercent:   dec(10),
	})

	if !out.InsuranceVATAmount.Equal(dec(18)) {
		t.Fatalf("insurance VAT = %s, want 18 for premium 118", out.InsuranceVATAmount)
	}
}

func TestComputeShares_NoInsuranceNoVAT(t *testing.T) {
	out := ComputeShares(ShareInput{
		GrossAmount:      dec(100_000),
		OperatorBaseFare: dec(80_000),
		CompanyPercent:   dec(10),
	})
	if !out.InsuranceVATAmount.IsZero() {
		t.Fatalf("VAT should be zero without premium, got %s", out.InsuranceVATAmount)
	}
}

func TestComputeShares_CancellationCreditJoinsOperatorPool(t *testing.T) {
	out := ComputeShares(ShareInput{
		GrossAmount:        dec(100_000),
		OperatorBaseFare:   dec(80_000),
		CancellationCredit: dec(20_000),
		CompanyPercent:     dec(10),
	})

	// operatorGross = 100000, system = 10000, net = 90000
	if !out.SystemShare.Equal(dec(10_000)) {
		t.Fatalf("system share = %s, want 10000 with credit included", out.SystemShare)
	}
	if !out.OperatorNetShare.Equal(dec(90_000)) {
		t.Fatalf("operator net = %s, want 90000", out.OperatorNetShare)
	}
}

func TestComputeShares_Deterministic(t *testing.T) {
	in := ShareInput{
		GrossAmount:      dec(137_500),
		OperatorBaseFare: dec(101_250),
		InsurancePremium: dec(2_360),
		CompanyPercent:   decimal.NewFromFloat(12.5),
		HasVendor:        true,
		VendorPercent:    decimal.NewFromFloat(7.5),
	}
	first := ComputeShares(in)
	second := ComputeShares(in)

	if !first.SystemShare.Equal(second.SystemShare) ||
		!first.OperatorNetShare.Equal(second.OperatorNetShare) ||
		!first.VendorTotal().Equal(second.VendorTotal()) {
		t.Fatalf("ComputeShares is not deterministic: %+v vs %+v", first, second)
	}
}
