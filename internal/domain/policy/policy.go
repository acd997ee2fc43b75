package policy

import (
	"strings"

	"github.com/agencyops/backend/internal/domain/shared"
)

// PolicyCategory groups policy products by how their serial numbers are
// provisioned.
type PolicyCategory string

const (
	// CategoryStandard policies consume pre-provisioned "Default" serials.
	CategoryStandard PolicyCategory = "standard"
	// CategoryAllianzWell policies consume serials from the dedicated
	// "Allianz Well" pool.
	CategoryAllianzWell PolicyCategory = "allianz_well"
	// CategoryManual policies carry an agent-supplied serial that is
	// registered on first use.
	CategoryManual PolicyCategory = "manual"
)

// PolicyDefinition is one sellable policy product.
type PolicyDefinition struct {
	shared.BaseAggregateRoot
	Name     string
	Category PolicyCategory
}

// NewPolicyDefinition creates a policy product definition.
func NewPolicyDefinition(name string, category PolicyCategory) (*PolicyDefinition, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Policy name cannot be empty")
	}
	switch category {
	case CategoryStandard, CategoryAllianzWell, CategoryManual:
	default:
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown policy category")
	}
	return &PolicyDefinition{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Category:          category,
	}, nil
}

// DisplayName returns the policy name, defaulting when blank so dashboard
// breakdowns never group under an empty key.
func (p *PolicyDefinition) DisplayName() string {
	if strings.TrimSpace(p.Name) == "" {
		return "Unknown Policy"
	}
	return p.Name
}
