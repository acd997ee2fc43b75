package hierarchy

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agencyops/backend/internal/domain/shared"
)

// Role positions a profile in the reporting hierarchy
type Role string

const (
	// RoleAgencyPartner submits policies and sees only their own numbers.
	RoleAgencyPartner Role = "AP"
	// RoleAgencyLeader oversees a group of agency partners.
	RoleAgencyLeader Role = "AL"
	// RoleManagingPartner sits above the leaders.
	RoleManagingPartner Role = "MP"
)

// Valid reports whether the role is one of the known hierarchy levels.
func (r Role) Valid() bool {
	switch r {
	case RoleAgencyPartner, RoleAgencyLeader, RoleManagingPartner:
		return true
	}
	return false
}

// IsLeadership reports whether the role may read rollups wider than its own.
func (r Role) IsLeadership() bool {
	return r == RoleAgencyLeader || r == RoleManagingPartner
}

// Profile is an agent account in the reporting hierarchy.
type Profile struct {
	shared.BaseAggregateRoot
	FirstName string
	LastName  string
	// LegacyName holds the single display-name field carried over from the
	// old roster import. Used only when first/last are both empty.
	LegacyName   string
	Role         Role
	ReportsTo    *uuid.UUID
	Email        string
	PasswordHash string
}

// NewProfile creates a profile with the given role. ReportsTo is optional and
// points at the AL for an AP, or the MP for an AL.
func NewProfile(firstName, lastName, email string, role Role, reportsTo *uuid.UUID) (*Profile, error) {
	if !role.Valid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown hierarchy role")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Email is required")
	}
	return &Profile{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         firstName,
		LastName:          lastName,
		Role:              role,
		ReportsTo:         reportsTo,
		Email:             email,
	}, nil
}

// DisplayName joins first and last name, falling back to the legacy roster
// field and finally to a placeholder.
func (p *Profile) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	if name != "" {
		return name
	}
	if legacy := strings.TrimSpace(p.LegacyName); legacy != "" {
		return legacy
	}
	return "Unknown Agent"
}

// SetCredentials stores the bcrypt hash for the login password.
func (p *Profile) SetCredentials(hash string) {
	p.PasswordHash = hash
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// CreatedOnOrBefore reports whether the profile existed at end of the given
// day. Used by headcount snapshots.
func (p *Profile) CreatedOnOrBefore(day time.Time) bool {
	endOfDay := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, time.UTC)
	return !p.CreatedAt.After(endOfDay)
}
