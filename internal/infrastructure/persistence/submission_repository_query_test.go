package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/agencyops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// The search filter uses ILIKE, which sqlite does not support, so the
// generated SQL is verified against a mocked postgres connection instead.
func newMockSubmissionRepository(t *testing.T) (*GormSubmissionRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSubmissionRepository(gormDB), mock, mockDB
}

func TestGormSubmissionRepository_SearchFilter(t *testing.T) {
	t.Run("matches client name case-insensitively and serial number", func(t *testing.T) {
		repo, mock, mockDB := newMockSubmissionRepository(t)
		defer mockDB.Close()

		agentID := uuid.New()
		submissionID := uuid.New()
		policyID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "agent_id", "policy_id", "client_name", "serial_number",
			"premium_paid", "annualized_premium", "payment_mode", "status",
			"attachments", "version",
		}).AddRow(
			submissionID, agentID, policyID, "Juan Cruz", "123456789",
			decimal.NewFromInt(120000), decimal.NewFromInt(120000), "Annual", "pending",
			"[]", 1,
		)

		mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE agent_id = \$1 AND \(client_name ILIKE \$2 OR serial_number LIKE \$3\) ORDER BY created_at DESC`).
			WithArgs(agentID, "%juan%", "%juan%").
			WillReturnRows(rows)

		found, err := repo.FindByAgent(context.Background(), agentID, shared.Filter{Search: "juan"})

		assert.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, submissionID, found[0].ID)
		assert.Equal(t, "Juan Cruz", found[0].ClientName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count applies the same search predicate without pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockSubmissionRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "submissions" WHERE client_name ILIKE \$1 OR serial_number LIKE \$2`).
			WithArgs("%cruz%", "%cruz%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.Count(context.Background(), shared.Filter{Search: "cruz", Page: 2, PageSize: 10})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
