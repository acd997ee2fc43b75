package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/agencyops/backend/internal/domain/hierarchy"
	"github.com/agencyops/backend/internal/domain/shared"
	"github.com/agencyops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProfileRepository implements hierarchy.Repository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindByID finds a profile by its ID
func (r *GormProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*hierarchy.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a profile by email
func (r *GormProfileRepository) FindByEmail(ctx context.Context, email string) (*hierarchy.Profile, error) {
	var model models.ProfileModel
	if err := r.db.WithContext(ctx).
		First(&model, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRole finds all profiles holding the given role
func (r *GormProfileRepository) FindByRole(ctx context.Context, role hierarchy.Role) ([]*hierarchy.Profile, error) {
	var profileModels []models.ProfileModel
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at ASC").
		Find(&profileModels).Error; err != nil {
		return nil, err
	}
	return toProfiles(profileModels), nil
}

// FindDirectReports returns profiles whose reports_to is the given id
func (r *GormProfileRepository) FindDirectReports(ctx context.Context, id uuid.UUID) ([]*hierarchy.Profile, error) {
	var profileModels []models.ProfileModel
	if err := r.db.WithContext(ctx).
		Where("reports_to = ?", id).
		Order("created_at ASC").
		Find(&profileModels).Error; err != nil {
		return nil, err
	}
	return toProfiles(profileModels), nil
}

// FindAll returns every profile
func (r *GormProfileRepository) FindAll(ctx context.Context) ([]*hierarchy.Profile, error) {
	var profileModels []models.ProfileModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&profileModels).Error; err != nil {
		return nil, err
	}
	return toProfiles(profileModels), nil
}

// Save creates or updates a profile
func (r *GormProfileRepository) Save(ctx context.Context, p *hierarchy.Profile) error {
	model := models.ProfileModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

func toProfiles(profileModels []models.ProfileModel) []*hierarchy.Profile {
	profiles := make([]*hierarchy.Profile, len(profileModels))
	for i := range profileModels {
		profiles[i] = profileModels[i].ToDomain()
	}
	return profiles
}
