package performance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agencyops/backend/internal/domain/policy"
)

// UnknownPolicyName labels distribution buckets for submissions whose
// policy definition carries no name.
const UnknownPolicyName = "Unknown Policy"

// TrendBucket is one month of issued production.
type TrendBucket struct {
	Month       time.Month      `json:"month"`
	IssuedCount int             `json:"issued_count"`
	ANP         decimal.Decimal `json:"anp"`
}

// MonthlyTrend buckets issued submissions of the given year by issue month.
func MonthlyTrend(subs []*policy.Submission, year int) [12]TrendBucket {
	var buckets [12]TrendBucket
	for i := range buckets {
		buckets[i].Month = time.Month(i + 1)
		buckets[i].ANP = decimal.Zero
	}
	for _, s := range subs {
		if !s.IsIssued() || s.DateIssued == nil || s.DateIssued.Year() != year {
			continue
		}
		b := &buckets[int(s.DateIssued.Month())-1]
		b.IssuedCount++
		b.ANP = b.ANP.Add(s.AnnualizedPremium)
	}
	return buckets
}

// PolicyDistribution counts issued submissions of the given year by policy
// name.
func PolicyDistribution(subs []*policy.Submission, year int) map[string]int {
	dist := make(map[string]int)
	for _, s := range subs {
		if !s.IsIssued() || s.DateIssued == nil || s.DateIssued.Year() != year {
			continue
		}
		name := s.PolicyName
		if name == "" {
			name = UnknownPolicyName
		}
		dist[name]++
	}
	return dist
}
