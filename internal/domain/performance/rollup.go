package performance

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agencyops/backend/internal/domain/policy"
)

var oneHundred = decimal.NewFromInt(100)

// AgentRollup aggregates one agent's submissions. Rollups are keyed by the
// agent's id; the display name is resolved separately so two agents sharing
// a name never merge.
type AgentRollup struct {
	AgentID       uuid.UUID       `json:"agent_id"`
	AgentName     string          `json:"agent_name"`
	TotalCount    int             `json:"total_count"`
	IssuedCount   int             `json:"issued_count"`
	PendingCount  int             `json:"pending_count"`
	DeclinedCount int             `json:"declined_count"`
	CumulativeANP decimal.Decimal `json:"cumulative_anp"`
	// MonthANP sums the mode-aware installment of submissions issued inside
	// the aggregation period.
	MonthANP       decimal.Decimal `json:"month_anp"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

// TeamRollup carries the per-agent rollups plus team totals. The average
// conversion is the arithmetic mean of per-agent rates, not a rate over
// team totals; with uneven caseloads the two differ and the mean is the
// number the dashboards have always shown.
type TeamRollup struct {
	Agents            []AgentRollup   `json:"agents"`
	TotalCount        int             `json:"total_count"`
	IssuedCount       int             `json:"issued_count"`
	PendingCount      int             `json:"pending_count"`
	DeclinedCount     int             `json:"declined_count"`
	TotalANP          decimal.Decimal `json:"total_anp"`
	MonthANP          decimal.Decimal `json:"month_anp"`
	AverageConversion decimal.Decimal `json:"average_conversion"`
}

// Aggregate folds submissions into per-agent and team rollups for the given
// period. Empty input yields a zeroed rollup with conversion 0.
func Aggregate(subs []*policy.Submission, period Period) *TeamRollup {
	byAgent := make(map[uuid.UUID]*AgentRollup)
	order := make([]uuid.UUID, 0)

	for _, s := range subs {
		r, ok := byAgent[s.AgentID]
		if !ok {
			r = &AgentRollup{
				AgentID:       s.AgentID,
				CumulativeANP: decimal.Zero,
				MonthANP:      decimal.Zero,
			}
			byAgent[s.AgentID] = r
			order = append(order, s.AgentID)
		}

		r.TotalCount++
		switch {
		case s.IsIssued():
			r.IssuedCount++
			r.CumulativeANP = r.CumulativeANP.Add(s.AnnualizedPremium)
			if s.DateIssued != nil && period.Contains(*s.DateIssued) {
				r.MonthANP = r.MonthANP.Add(s.Installment())
			}
		case s.Status == policy.SubmissionStatusDeclined:
			r.DeclinedCount++
		default:
			r.PendingCount++
		}
	}

	team := &TeamRollup{
		Agents:            make([]AgentRollup, 0, len(byAgent)),
		TotalANP:          decimal.Zero,
		MonthANP:          decimal.Zero,
		AverageConversion: decimal.Zero,
	}

	rateSum := decimal.Zero
	for _, id := range order {
		r := byAgent[id]
		r.ConversionRate = conversionRate(r.IssuedCount, r.TotalCount)
		rateSum = rateSum.Add(r.ConversionRate)

		team.TotalCount += r.TotalCount
		team.IssuedCount += r.IssuedCount
		team.PendingCount += r.PendingCount
		team.DeclinedCount += r.DeclinedCount
		team.TotalANP = team.TotalANP.Add(r.CumulativeANP)
		team.MonthANP = team.MonthANP.Add(r.MonthANP)
		team.Agents = append(team.Agents, *r)
	}

	if len(team.Agents) > 0 {
		team.AverageConversion = rateSum.Div(decimal.NewFromInt(int64(len(team.Agents)))).Round(1)
	}

	sort.SliceStable(team.Agents, func(i, j int) bool {
		if !team.Agents[i].CumulativeANP.Equal(team.Agents[j].CumulativeANP) {
			return team.Agents[i].CumulativeANP.GreaterThan(team.Agents[j].CumulativeANP)
		}
		return team.Agents[i].AgentID.String() < team.Agents[j].AgentID.String()
	})

	return team
}

func conversionRate(issued, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(issued)).Mul(oneHundred).
		Div(decimal.NewFromInt(int64(total))).Round(1)
}
