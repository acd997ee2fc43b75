package persistence

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agencyops/backend/internal/domain/policy"
	"github.com/agencyops/backend/internal/domain/shared"
	"github.com/agencyops/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSubmissionTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.SubmissionModel{}, &models.PaymentRecordModel{})
	require.NoError(t, err)

	return db
}

// serials are unique per submission, so every test row gets its own
var testSerialCounter atomic.Int64

func nextTestSerial() string {
	return fmt.Sprintf("%09d", 900000000+testSerialCounter.Add(1))
}

func newTestSubmission(t *testing.T, agentID uuid.UUID) *policy.Submission {
	sub, err := policy.NewSubmission(
		agentID,
		uuid.New(),
		decimal.NewFromInt(120000),
		policy.PaymentModeMonthly,
		"2025-06-01",
	)
	require.NoError(t, err)
	sub.ClientName = "Juan Cruz"
	sub.ClientEmail = "juan@example.com"
	require.NoError(t, sub.AssignSerial(nextTestSerial()))
	return sub
}

func TestSubmissionRepository_SaveAndFind(t *testing.T) {
	db := setupSubmissionTestDB(t)
	repo := NewGormSubmissionRepository(db)
	ctx := context.Background()

	t.Run("round-trips a submission", func(t *testing.T) {
		sub := newTestSubmission(t, uuid.New())
		require.NoError(t, repo.Save(ctx, sub))

		found, err := repo.FindByID(ctx, sub.ID)
		require.NoError(t, err)
		assert.Equal(t, sub.AgentID, found.AgentID)
		assert.Equal(t, sub.SerialNumber, found.SerialNumber)
		assert.Equal(t, policy.SubmissionStatusPending, found.Status)
		assert.True(t, found.PremiumPaid.Equal(decimal.NewFromInt(120000)))
		assert.True(t, found.AnnualizedPremium.Equal(decimal.NewFromInt(120000)))
		require.NotNil(t, found.NextPaymentDate)
	})

	t.Run("round-trips attachments", func(t *testing.T) {
		sub := newTestSubmission(t, uuid.New())
		require.NoError(t, sub.AddAttachment(policy.Attachment{
			Name:        "policy_form.pdf",
			StorageKey:  "submissions/" + sub.ID.String() + "/policy_form.pdf",
			ContentType: "application/pdf",
			Size:        2048,
		}))
		require.NoError(t, repo.Save(ctx, sub))

		found, err := repo.FindByID(ctx, sub.ID)
		require.NoError(t, err)
		require.Len(t, found.Attachments, 1)
		assert.Equal(t, "policy_form.pdf", found.Attachments[0].Name)
		assert.Equal(t, int64(2048), found.Attachments[0].Size)
	})

	t.Run("not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestSubmissionRepository_FindByAgents(t *testing.T) {
	db := setupSubmissionTestDB(t)
	repo := NewGormSubmissionRepository(db)
	ctx := context.Background()

	agentA := uuid.New()
	agentB := uuid.New()
	agentC := uuid.New()
	for _, agent := range []uuid.UUID{agentA, agentB, agentC} {
		require.NoError(t, repo.Save(ctx, newTestSubmission(t, agent)))
	}

	t.Run("returns only rows owned by the given agents", func(t *testing.T) {
		found, err := repo.FindByAgents(ctx, []uuid.UUID{agentA, agentB}, shared.Filter{})
		require.NoError(t, err)
		assert.Len(t, found, 2)
		for _, sub := range found {
			assert.NotEqual(t, agentC, sub.AgentID)
		}
	})

	t.Run("empty id list returns no rows without querying", func(t *testing.T) {
		found, err := repo.FindByAgents(ctx, nil, shared.Filter{})
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("count covers all rows", func(t *testing.T) {
		count, err := repo.Count(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestSubmissionRepository_FindIssuedBetween(t *testing.T) {
	db := setupSubmissionTestDB(t)
	repo := NewGormSubmissionRepository(db)
	ctx := context.Background()

	inWindow := newTestSubmission(t, uuid.New())
	require.NoError(t, inWindow.MarkIssued(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, repo.Save(ctx, inWindow))

	outOfWindow := newTestSubmission(t, uuid.New())
	require.NoError(t, outOfWindow.MarkIssued(time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, repo.Save(ctx, outOfWindow))

	pending := newTestSubmission(t, uuid.New())
	require.NoError(t, repo.Save(ctx, pending))

	found, err := repo.FindIssuedBetween(ctx,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, inWindow.ID, found[0].ID)
}

func TestSubmissionRepository_SaveWithLock(t *testing.T) {
	db := setupSubmissionTestDB(t)
	repo := NewGormSubmissionRepository(db)
	ctx := context.Background()

	t.Run("saves when the stored version matches", func(t *testing.T) {
		sub := newTestSubmission(t, uuid.New())
		require.NoError(t, repo.Save(ctx, sub))

		require.NoError(t, sub.MarkIssued(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)))
		require.NoError(t, repo.SaveWithLock(ctx, sub))

		found, err := repo.FindByID(ctx, sub.ID)
		require.NoError(t, err)
		assert.Equal(t, policy.SubmissionStatusIssued, found.Status)
		assert.Equal(t, sub.Version, found.Version)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		sub := newTestSubmission(t, uuid.New())
		require.NoError(t, repo.Save(ctx, sub))

		stale := *sub
		require.NoError(t, sub.MarkIssued(time.Now()))
		require.NoError(t, repo.SaveWithLock(ctx, sub))

		require.NoError(t, stale.Decline(time.Now()))
		err := repo.SaveWithLock(ctx, &stale)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OPTIMISTIC_LOCK_ERROR", domainErr.Code)
	})
}

func TestSubmissionRepository_FindBySerial(t *testing.T) {
	db := setupSubmissionTestDB(t)
	repo := NewGormSubmissionRepository(db)
	ctx := context.Background()

	sub := newTestSubmission(t, uuid.New())
	require.NoError(t, repo.Save(ctx, sub))

	t.Run("finds the submission holding a serial", func(t *testing.T) {
		found, err := repo.FindBySerial(ctx, sub.SerialNumber)
		require.NoError(t, err)
		assert.Equal(t, sub.ID, found.ID)
	})

	t.Run("not found for a free serial", func(t *testing.T) {
		_, err := repo.FindBySerial(ctx, "999999999")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects a second submission on the same serial", func(t *testing.T) {
		dup := newTestSubmission(t, uuid.New())
		dup.SerialNumber = sub.SerialNumber
		assert.Error(t, repo.Save(ctx, dup))
	})
}

func TestSubmissionRepository_SaveWithPayment(t *testing.T) {
	db := setupSubmissionTestDB(t)
	repo := NewGormSubmissionRepository(db)
	history := NewGormPaymentHistoryRepository(db)
	ctx := context.Background()

	newIssuedSubmission := func(t *testing.T) *policy.Submission {
		sub := newTestSubmission(t, uuid.New())
		require.NoError(t, sub.MarkIssued(time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)))
		require.NoError(t, repo.Save(ctx, sub))
		return sub
	}

	t.Run("persists the schedule advance and exactly one record", func(t *testing.T) {
		sub := newIssuedSubmission(t)

		record, err := sub.RecordPayment(time.Now())
		require.NoError(t, err)
		require.NoError(t, repo.SaveWithPayment(ctx, sub, record))

		found, err := repo.FindByID(ctx, sub.ID)
		require.NoError(t, err)
		assert.Equal(t, sub.NextPaymentDate.Format(policy.DateLayout),
			found.NextPaymentDate.Format(policy.DateLayout))

		records, err := history.FindBySubmission(ctx, sub.ID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, record.PeriodCovered.Format(policy.DateLayout),
			records[0].PeriodCovered.Format(policy.DateLayout))
	})

	t.Run("a lock conflict rolls the history entry back", func(t *testing.T) {
		sub := newIssuedSubmission(t)

		stale := *sub
		require.NoError(t, sub.Decline(time.Now()))
		require.NoError(t, repo.SaveWithLock(ctx, sub))

		record, err := stale.RecordPayment(time.Now())
		require.NoError(t, err)

		err = repo.SaveWithPayment(ctx, &stale, record)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OPTIMISTIC_LOCK_ERROR", domainErr.Code)

		// neither write survives the rollback
		records, err := history.FindBySubmission(ctx, stale.ID)
		require.NoError(t, err)
		assert.Empty(t, records)

		found, err := repo.FindByID(ctx, sub.ID)
		require.NoError(t, err)
		assert.Equal(t, policy.SubmissionStatusDeclined, found.Status)
	})
}

func TestPaymentHistoryRepository_FindBySubmission(t *testing.T) {
	db := setupSubmissionTestDB(t)
	repo := NewGormPaymentHistoryRepository(db)
	ctx := context.Background()

	submissionID := uuid.New()
	june := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	july := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	// insert out of order to prove read-side ordering
	for _, record := range []*policy.PaymentRecord{
		policy.NewPaymentRecord(submissionID, decimal.NewFromInt(10000), july, time.Now()),
		policy.NewPaymentRecord(submissionID, decimal.NewFromInt(10000), june, time.Now()),
		policy.NewPaymentRecord(uuid.New(), decimal.NewFromInt(500), june, time.Now()),
	} {
		require.NoError(t, db.Create(models.PaymentRecordModelFromDomain(record)).Error)
	}

	records, err := repo.FindBySubmission(ctx, submissionID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].PeriodCovered.Before(records[1].PeriodCovered))
	assert.True(t, records[0].AmountCharged.Equal(decimal.NewFromInt(10000)))
}
