package persistence

import (
	"context"
	"errors"

	"github.com/agencyops/backend/internal/domain/policy"
	"github.com/agencyops/backend/internal/domain/shared"
	"github.com/agencyops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPolicyRepository implements PolicyRepository using GORM
type GormPolicyRepository struct {
	db *gorm.DB
}

// NewGormPolicyRepository creates a new GormPolicyRepository
func NewGormPolicyRepository(db *gorm.DB) *GormPolicyRepository {
	return &GormPolicyRepository{db: db}
}

// FindByID finds a policy definition by its ID
func (r *GormPolicyRepository) FindByID(ctx context.Context, id uuid.UUID) (*policy.PolicyDefinition, error) {
	var model models.PolicyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a policy definition by its exact name
func (r *GormPolicyRepository) FindByName(ctx context.Context, name string) (*policy.PolicyDefinition, error) {
	var model models.PolicyModel
	if err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all policy definitions
func (r *GormPolicyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]policy.PolicyDefinition, error) {
	query := r.db.WithContext(ctx).Model(&models.PolicyModel{}).Order("name ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var policyModels []models.PolicyModel
	if err := query.Find(&policyModels).Error; err != nil {
		return nil, err
	}

	policies := make([]policy.PolicyDefinition, len(policyModels))
	for i, model := range policyModels {
		policies[i] = *model.ToDomain()
	}
	return policies, nil
}

// Save creates or updates a policy definition
func (r *GormPolicyRepository) Save(ctx context.Context, p *policy.PolicyDefinition) error {
	model := models.PolicyModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}
