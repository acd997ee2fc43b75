package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/agencyops/backend/internal/domain/policy"
	"github.com/agencyops/backend/internal/domain/shared"
	"github.com/agencyops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSubmissionRepository implements SubmissionRepository using GORM
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewGormSubmissionRepository creates a new GormSubmissionRepository
func NewGormSubmissionRepository(db *gorm.DB) *GormSubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// FindByID finds a submission by its ID
func (r *GormSubmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*policy.Submission, error) {
	var model models.SubmissionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySerial finds the submission holding the given serial number
func (r *GormSubmissionRepository) FindBySerial(ctx context.Context, serialNumber string) (*policy.Submission, error) {
	var model models.SubmissionModel
	if err := r.db.WithContext(ctx).First(&model, "serial_number = ?", serialNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAgent finds all submissions owned by one agent
func (r *GormSubmissionRepository) FindByAgent(ctx context.Context, agentID uuid.UUID, filter shared.Filter) ([]policy.Submission, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.SubmissionModel{}).Where("agent_id = ?", agentID),
		filter,
	)
	return r.findAll(query)
}

// FindByAgents finds all submissions owned by any of the given agents
func (r *GormSubmissionRepository) FindByAgents(ctx context.Context, agentIDs []uuid.UUID, filter shared.Filter) ([]policy.Submission, error) {
	if len(agentIDs) == 0 {
		return []policy.Submission{}, nil
	}
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.SubmissionModel{}).Where("agent_id IN ?", agentIDs),
		filter,
	)
	return r.findAll(query)
}

// FindAll finds all submissions matching the filter
func (r *GormSubmissionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]policy.Submission, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SubmissionModel{}), filter)
	return r.findAll(query)
}

// FindIssuedBetween finds issued submissions whose issue date falls in [from, to]
func (r *GormSubmissionRepository) FindIssuedBetween(ctx context.Context, from, to time.Time) ([]policy.Submission, error) {
	query := r.db.WithContext(ctx).Model(&models.SubmissionModel{}).
		Where("status = ? AND date_issued >= ? AND date_issued <= ?", policy.SubmissionStatusIssued, from, to).
		Order("date_issued ASC")
	return r.findAll(query)
}

// Save creates or updates a submission
func (r *GormSubmissionRepository) Save(ctx context.Context, submission *policy.Submission) error {
	model := models.SubmissionModelFromDomain(submission)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a submission with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormSubmissionRepository) SaveWithLock(ctx context.Context, submission *policy.Submission) error {
	model := models.SubmissionModelFromDomain(submission)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", submission.ID, submission.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The submission has been modified by another transaction")
	}
	return nil
}

// SaveWithPayment saves the submission under its version guard and appends
// the payment record in the same transaction. A lock conflict rolls both
// writes back, so a retried payment can never leave a duplicate history
// entry for the same period.
func (r *GormSubmissionRepository) SaveWithPayment(ctx context.Context, submission *policy.Submission, record *policy.PaymentRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.SubmissionModelFromDomain(submission)
		result := tx.
			Model(model).
			Where("id = ? AND version = ?", submission.ID, submission.Version-1).
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The submission has been modified by another transaction")
		}

		return tx.Create(models.PaymentRecordModelFromDomain(record)).Error
	})
}

// Count counts submissions matching the filter
func (r *GormSubmissionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.SubmissionModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSubmissionRepository) findAll(query *gorm.DB) ([]policy.Submission, error) {
	var submissionModels []models.SubmissionModel
	if err := query.Find(&submissionModels).Error; err != nil {
		return nil, err
	}
	submissions := make([]policy.Submission, len(submissionModels))
	for i, model := range submissionModels {
		submissions[i] = *model.ToDomain()
	}
	return submissions, nil
}

// applyFilter applies filter options to the query
func (r *GormSubmissionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSubmissionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("client_name ILIKE ? OR serial_number LIKE ?", search, search)
	}
	for field, value := range filter.Filters {
		query = query.Where(field+" = ?", value)
	}
	if filter.OrderBy != "" {
		dir := "ASC"
		if filter.OrderDir == "desc" {
			dir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + dir)
	} else {
		query = query.Order("created_at DESC")
	}
	return query
}
