package policy

import "strings"

// PaymentMode is the billing frequency label attached to a submission.
// Labels arrive from client forms and legacy imports, so matching is tolerant:
// case-insensitive substring match rather than strict equality.
type PaymentMode string

const (
	PaymentModeMonthly    PaymentMode = "Monthly"
	PaymentModeQuarterly  PaymentMode = "Quarterly"
	PaymentModeSemiAnnual PaymentMode = "Semi-Annual"
	PaymentModeAnnual     PaymentMode = "Annual"
)

// PeriodsPerYear returns how many installments a year holds for the mode.
// Unrecognized or empty labels are treated as annual (one period per year).
func (m PaymentMode) PeriodsPerYear() int {
	label := strings.ToLower(string(m))
	switch {
	case strings.Contains(label, "monthly"):
		return 12
	case strings.Contains(label, "quarterly"):
		return 4
	case strings.Contains(label, "semi"), strings.Contains(label, "half"):
		return 2
	case strings.Contains(label, "annual"), strings.Contains(label, "yearly"):
		return 1
	default:
		return 1
	}
}

// IsRecognized reports whether the label maps to one of the four supported
// modes rather than falling through to the annual default.
func (m PaymentMode) IsRecognized() bool {
	label := strings.ToLower(string(m))
	for _, fragment := range []string{"monthly", "quarterly", "semi", "half", "annual", "yearly"} {
		if strings.Contains(label, fragment) {
			return true
		}
	}
	return false
}
