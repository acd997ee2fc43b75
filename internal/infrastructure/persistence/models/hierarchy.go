package models

import (
	"github.com/agencyops/backend/internal/domain/hierarchy"
	"github.com/agencyops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProfileModel is the GORM model for agent profiles
type ProfileModel struct {
	AggregateModel
	FirstName    string     `gorm:"size:128"`
	LastName     string     `gorm:"size:128"`
	LegacyName   string     `gorm:"size:255"`
	Role         string     `gorm:"size:8;not null;index"`
	ReportsTo    *uuid.UUID `gorm:"type:uuid;index"`
	Email        string     `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string     `gorm:"size:255"`
}

// TableName specifies the table name for ProfileModel
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts ProfileModel to domain Profile
func (m *ProfileModel) ToDomain() *hierarchy.Profile {
	return &hierarchy.Profile{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		LegacyName:   m.LegacyName,
		Role:         hierarchy.Role(m.Role),
		ReportsTo:    m.ReportsTo,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
	}
}

// ProfileModelFromDomain converts domain Profile to ProfileModel
func ProfileModelFromDomain(p *hierarchy.Profile) *ProfileModel {
	model := &ProfileModel{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		LegacyName:   p.LegacyName,
		Role:         string(p.Role),
		ReportsTo:    p.ReportsTo,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
	}
	model.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return model
}
