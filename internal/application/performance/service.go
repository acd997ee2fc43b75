package performance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agencyops/backend/internal/domain/hierarchy"
	domain "github.com/agencyops/backend/internal/domain/performance"
	"github.com/agencyops/backend/internal/domain/policy"
	"github.com/agencyops/backend/internal/domain/shared"
)

// Service builds dashboard views over persisted submissions. Reads are
// eventually-consistent snapshots; no locks are held across the aggregation.
type Service struct {
	submissions policy.SubmissionRepository
	profiles    hierarchy.Repository
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a new performance service
func NewService(submissions policy.SubmissionRepository, profiles hierarchy.Repository, logger *zap.Logger) *Service {
	return &Service{
		submissions: submissions,
		profiles:    profiles,
		logger:      logger,
		now:         time.Now,
	}
}

// Dashboard rolls up the submissions visible to the given profile's subtree
// for one calendar month, defaulting to the current one.
func (s *Service) Dashboard(ctx context.Context, requesterID uuid.UUID, q DashboardQuery) (*DashboardResponse, error) {
	scopeID := requesterID
	if q.ProfileID != "" {
		parsed, err := uuid.Parse(q.ProfileID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "profile_id is not a valid id")
		}
		scopeID = parsed
	}

	profile, err := s.profiles.FindByID(ctx, scopeID)
	if err != nil {
		return nil, err
	}

	agentIDs, err := hierarchy.Subtree(ctx, s.profiles, profile)
	if err != nil {
		return nil, err
	}

	subs, err := s.submissions.FindByAgents(ctx, agentIDs, shared.Filter{})
	if err != nil {
		return nil, err
	}

	period := defaultPeriod(q.Year, q.Month, s.now())
	team := domain.Aggregate(toPointers(subs), period)
	if err := s.resolveAgentNames(ctx, team); err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Year:  period.Year,
		Month: int(period.Month),
		Team:  team,
	}, nil
}

// Trend returns monthly issued counts, ANP sums and the policy mix for a
// year, defaulting to the current one.
func (s *Service) Trend(ctx context.Context, q TrendQuery) (*TrendResponse, error) {
	year := q.Year
	if year == 0 {
		year = s.now().Year()
	}

	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
	subs, err := s.submissions.FindIssuedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	ptrs := toPointers(subs)
	buckets := domain.MonthlyTrend(ptrs, year)
	return &TrendResponse{
		Year:      year,
		Months:    buckets[:],
		PolicyMix: domain.PolicyDistribution(ptrs, year),
	}, nil
}

// History recomputes one statistic across the 12 months ending at the
// selected month, defaulting to the current one.
func (s *Service) History(ctx context.Context, q HistoryQuery) (*HistoryResponse, error) {
	stat := domain.StatType(q.StatType)
	if !stat.Valid() {
		return nil, shared.NewDomainError("INVALID_STAT_TYPE", "Unknown statistic type")
	}

	subs, err := s.submissions.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	profiles, err := s.profiles.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	selected := defaultPeriod(q.Year, q.Month, s.now())
	history, err := domain.History(stat, toPointers(subs), profiles, selected)
	if err != nil {
		return nil, err
	}

	return &HistoryResponse{
		Stat:             string(history.Stat),
		Points:           history.Points,
		PriorYearValue:   history.PriorYearValue,
		YoYChangePercent: history.YoYChangePercent,
	}, nil
}

// resolveAgentNames fills display names onto id-keyed rollups. A missing
// profile leaves the placeholder name rather than failing the read.
func (s *Service) resolveAgentNames(ctx context.Context, team *domain.TeamRollup) error {
	for i := range team.Agents {
		profile, err := s.profiles.FindByID(ctx, team.Agents[i].AgentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				team.Agents[i].AgentName = "Unknown Agent"
				continue
			}
			return err
		}
		team.Agents[i].AgentName = profile.DisplayName()
	}
	return nil
}

func toPointers(subs []policy.Submission) []*policy.Submission {
	out := make([]*policy.Submission, len(subs))
	for i := range subs {
		out[i] = &subs[i]
	}
	return out
}
