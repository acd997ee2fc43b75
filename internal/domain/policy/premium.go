package policy

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizedPremium holds the two derived premium figures for one submission.
type NormalizedPremium struct {
	// InstallmentAmount is the periodic amount actually charged per cycle.
	InstallmentAmount decimal.Decimal
	// AnnualizedPremium is the yearly-equivalent (ANP) figure used by rollups.
	AnnualizedPremium decimal.Decimal
}

// NormalizePremium derives the installment and annualized amounts from the
// stored total premium. The stored premium_paid is the full annual premium,
// so the annualized figure is the premium itself and the installment is the
// premium divided by the mode's periods per year. This matches the amount a
// client is charged on each payment cycle.
func NormalizePremium(totalPremium decimal.Decimal, mode PaymentMode) NormalizedPremium {
	periods := decimal.NewFromInt(int64(mode.PeriodsPerYear()))
	return NormalizedPremium{
		InstallmentAmount: totalPremium.Div(periods),
		AnnualizedPremium: totalPremium,
	}
}

// ParseAmount coerces free-form premium input to a decimal. Blank or
// unparseable values become zero; amounts are never a reason to reject a
// submission form.
func ParseAmount(raw string) decimal.Decimal {
	trimmed := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if trimmed == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
