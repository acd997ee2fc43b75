package hierarchy

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines profile persistence operations
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	FindByRole(ctx context.Context, role Role) ([]*Profile, error)
	// FindDirectReports returns profiles whose ReportsTo is the given id.
	FindDirectReports(ctx context.Context, id uuid.UUID) ([]*Profile, error)
	FindAll(ctx context.Context) ([]*Profile, error)
	Save(ctx context.Context, p *Profile) error
}

// Subtree resolves the set of agent ids a profile may read submissions for.
// An AP sees only themselves; an AL sees themselves plus their direct APs;
// an MP sees themselves, their ALs, and every AP under those ALs.
func Subtree(ctx context.Context, repo Repository, p *Profile) ([]uuid.UUID, error) {
	ids := []uuid.UUID{p.ID}
	if p.Role == RoleAgencyPartner {
		return ids, nil
	}
	reports, err := repo.FindDirectReports(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	for _, r := range reports {
		ids = append(ids, r.ID)
		if p.Role != RoleManagingPartner {
			continue
		}
		grand, err := repo.FindDirectReports(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		for _, g := range grand {
			ids = append(ids, g.ID)
		}
	}
	return ids, nil
}
