package performance

import (
	"github.com/shopspring/decimal"

	"github.com/agencyops/backend/internal/domain/hierarchy"
	"github.com/agencyops/backend/internal/domain/policy"
	"github.com/agencyops/backend/internal/domain/shared"
)

// StatType selects which statistic a history query recomputes per month.
type StatType string

const (
	StatANP           StatType = "anp"
	StatCaseCount     StatType = "case_count"
	StatActivityRatio StatType = "activity_ratio"
	StatLeaderCount   StatType = "leader_count"
	StatPartnerCount  StatType = "partner_count"
)

// Valid reports whether the stat type is supported.
func (s StatType) Valid() bool {
	switch s {
	case StatANP, StatCaseCount, StatActivityRatio, StatLeaderCount, StatPartnerCount:
		return true
	}
	return false
}

// Direction classifies a point against the month before it.
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

// HistoryPoint is one month's recomputed statistic.
type HistoryPoint struct {
	Period    Period          `json:"period"`
	Value     decimal.Decimal `json:"value"`
	Direction Direction       `json:"direction"`
}

// StatHistory is a 12-month trend line ending at the selected month, plus
// the same statistic evaluated at the selected month one year earlier. That
// prior-year value anchors the overall year-over-year change and classifies
// the oldest point in the window.
type StatHistory struct {
	Stat             StatType        `json:"stat"`
	Points           []HistoryPoint  `json:"points"`
	PriorYearValue   decimal.Decimal `json:"prior_year_value"`
	YoYChangePercent decimal.Decimal `json:"yoy_change_percent"`
}

// History recomputes the statistic at each of the 12 months ending at
// selected, oldest first. Each point is up when strictly greater than the
// previous month's value, down when strictly less, else stable.
func History(stat StatType, subs []*policy.Submission, profiles []*hierarchy.Profile, selected Period) (*StatHistory, error) {
	if !stat.Valid() {
		return nil, shared.NewDomainError("INVALID_STAT_TYPE", "Unknown statistic type")
	}

	priorYear := statAt(stat, subs, profiles, selected.AddMonths(-12))
	h := &StatHistory{
		Stat:             stat,
		Points:           make([]HistoryPoint, 0, 12),
		PriorYearValue:   priorYear,
		YoYChangePercent: decimal.Zero,
	}

	prev := priorYear
	for offset := -11; offset <= 0; offset++ {
		p := selected.AddMonths(offset)
		v := statAt(stat, subs, profiles, p)
		h.Points = append(h.Points, HistoryPoint{
			Period:    p,
			Value:     v,
			Direction: classify(v, prev),
		})
		prev = v
	}

	if !priorYear.IsZero() {
		current := h.Points[len(h.Points)-1].Value
		h.YoYChangePercent = current.Sub(priorYear).Mul(oneHundred).Div(priorYear).Round(1)
	}
	return h, nil
}

func classify(value, previous decimal.Decimal) Direction {
	switch {
	case value.GreaterThan(previous):
		return DirectionUp
	case value.LessThan(previous):
		return DirectionDown
	default:
		return DirectionStable
	}
}

func statAt(stat StatType, subs []*policy.Submission, profiles []*hierarchy.Profile, p Period) decimal.Decimal {
	switch stat {
	case StatANP:
		sum := decimal.Zero
		for _, s := range subs {
			if s.IsIssued() && s.DateIssued != nil && p.Contains(*s.DateIssued) {
				sum = sum.Add(s.AnnualizedPremium)
			}
		}
		return sum
	case StatCaseCount:
		count := 0
		for _, s := range subs {
			if s.IsIssued() && s.DateIssued != nil && p.Contains(*s.DateIssued) {
				count++
			}
		}
		return decimal.NewFromInt(int64(count))
	case StatActivityRatio:
		total, issued := 0, 0
		for _, s := range subs {
			if !p.Contains(s.CreatedAt) {
				continue
			}
			total++
			if s.IsIssued() {
				issued++
			}
		}
		return conversionRate(issued, total)
	case StatLeaderCount:
		return headcount(profiles, hierarchy.RoleAgencyLeader, p)
	case StatPartnerCount:
		return headcount(profiles, hierarchy.RoleAgencyPartner, p)
	}
	return decimal.Zero
}

// headcount snapshots role membership as of the period's last calendar day.
func headcount(profiles []*hierarchy.Profile, role hierarchy.Role, p Period) decimal.Decimal {
	count := 0
	lastDay := p.LastDay()
	for _, prof := range profiles {
		if prof.Role == role && prof.CreatedOnOrBefore(lastDay) {
			count++
		}
	}
	return decimal.NewFromInt(int64(count))
}
