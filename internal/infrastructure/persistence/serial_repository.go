package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/agencyops/backend/internal/domain/serial"
	"github.com/agencyops/backend/internal/domain/shared"
	"github.com/agencyops/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// claimAttempts bounds the retry loop when concurrent provisioning requests
// race for the same candidate serial.
const claimAttempts = 3

// GormSerialRepository implements serial.Repository using GORM
type GormSerialRepository struct {
	db *gorm.DB
}

// NewGormSerialRepository creates a new GormSerialRepository
func NewGormSerialRepository(db *gorm.DB) *GormSerialRepository {
	return &GormSerialRepository{db: db}
}

// FindByValue finds a serial number by its exact value
func (r *GormSerialRepository) FindByValue(ctx context.Context, value string) (*serial.SerialNumber, error) {
	var model models.SerialModel
	if err := r.db.WithContext(ctx).First(&model, "value = ?", value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLegacyPrefix looks up an 8-digit record whose value equals the given prefix
func (r *GormSerialRepository) FindByLegacyPrefix(ctx context.Context, prefix string) (*serial.SerialNumber, error) {
	return r.FindByValue(ctx, prefix)
}

// ClaimUnissued atomically marks the oldest unissued serial of the given
// type as issued and returns it. The claim itself is a single conditional
// UPDATE guarded by the issued flag, so two concurrent requests can never
// consume the same serial; the loser of a race retries with the next
// candidate. Returns ErrSerialExhausted when the pool is empty.
func (r *GormSerialRepository) ClaimUnissued(ctx context.Context, serialType serial.SerialType) (*serial.SerialNumber, error) {
	for attempt := 0; attempt < claimAttempts; attempt++ {
		var model models.SerialModel
		err := r.db.WithContext(ctx).
			Where("type = ? AND issued = ?", serialType, false).
			Order("created_at ASC").
			First(&model).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, shared.ErrSerialExhausted
			}
			return nil, err
		}

		now := time.Now()
		result := r.db.WithContext(ctx).
			Model(&models.SerialModel{}).
			Where("id = ? AND issued = ?", model.ID, false).
			Updates(map[string]interface{}{
				"issued":     true,
				"updated_at": now,
				"version":    gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			// another request claimed this serial first
			continue
		}

		model.Issued = true
		model.UpdatedAt = now
		model.Version++
		return model.ToDomain(), nil
	}
	return nil, shared.ErrConcurrencyConflict
}

// Save creates or updates a serial number
func (r *GormSerialRepository) Save(ctx context.Context, s *serial.SerialNumber) error {
	model := models.SerialModelFromDomain(s)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountUnissued counts the remaining unissued serials in a pool
func (r *GormSerialRepository) CountUnissued(ctx context.Context, serialType serial.SerialType) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SerialModel{}).
		Where("type = ? AND issued = ?", serialType, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
