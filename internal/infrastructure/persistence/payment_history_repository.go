package persistence

import (
	"context"

	"github.com/agencyops/backend/internal/domain/policy"
	"github.com/agencyops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentHistoryRepository implements PaymentHistoryRepository using GORM.
// The table is append-only; rows are written through the submission
// repository's transactional save and never updated or deleted.
type GormPaymentHistoryRepository struct {
	db *gorm.DB
}

// NewGormPaymentHistoryRepository creates a new GormPaymentHistoryRepository
func NewGormPaymentHistoryRepository(db *gorm.DB) *GormPaymentHistoryRepository {
	return &GormPaymentHistoryRepository{db: db}
}

// FindBySubmission returns all payment records for a submission, oldest first
func (r *GormPaymentHistoryRepository) FindBySubmission(ctx context.Context, submissionID uuid.UUID) ([]policy.PaymentRecord, error) {
	var recordModels []models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("period_covered ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]policy.PaymentRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, nil
}
