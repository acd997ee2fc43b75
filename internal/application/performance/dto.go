package performance

import (
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/agencyops/backend/internal/domain/performance"
)

// DashboardQuery selects whose numbers to roll up and for which month.
// Zero Year/Month default to the current calendar month.
type DashboardQuery struct {
	ProfileID string `form:"profile_id"`
	Year      int    `form:"year"`
	Month     int    `form:"month"`
}

// DashboardResponse is the rollup view scoped to the requesting profile's
// subtree.
type DashboardResponse struct {
	Year  int                `json:"year"`
	Month int                `json:"month"`
	Team  *domain.TeamRollup `json:"team"`
}

// TrendQuery selects the year for monthly trend buckets
type TrendQuery struct {
	Year int `form:"year"`
}

// TrendResponse carries the 12 monthly buckets and the policy mix
type TrendResponse struct {
	Year      int                  `json:"year"`
	Months    []domain.TrendBucket `json:"months"`
	PolicyMix map[string]int       `json:"policy_mix"`
}

// HistoryQuery selects a statistic and the month its window ends at
type HistoryQuery struct {
	StatType string `form:"stat_type"`
	Year     int    `form:"year"`
	Month    int    `form:"month"`
}

// HistoryResponse is the 12-month trend line for one statistic
type HistoryResponse struct {
	Stat             string                `json:"stat"`
	Points           []domain.HistoryPoint `json:"points"`
	PriorYearValue   decimal.Decimal       `json:"prior_year_value"`
	YoYChangePercent decimal.Decimal       `json:"yoy_change_percent"`
}

func defaultPeriod(year, month int, now time.Time) domain.Period {
	p := domain.PeriodOf(now)
	if year > 0 {
		p.Year = year
	}
	if month >= 1 && month <= 12 {
		p.Month = time.Month(month)
	}
	return p
}
