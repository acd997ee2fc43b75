package policy

import (
	"context"
	"time"

	"github.com/agencyops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SubmissionRepository defines the interface for submission persistence
type SubmissionRepository interface {
	// FindByID finds a submission by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Submission, error)

	// FindBySerial finds the submission holding the given serial number,
	// or ErrNotFound when the serial is still free
	FindBySerial(ctx context.Context, serialNumber string) (*Submission, error)

	// FindByAgent finds all submissions owned by one agent
	FindByAgent(ctx context.Context, agentID uuid.UUID, filter shared.Filter) ([]Submission, error)

	// FindByAgents finds all submissions owned by any of the given agents
	FindByAgents(ctx context.Context, agentIDs []uuid.UUID, filter shared.Filter) ([]Submission, error)

	// FindAll finds all submissions matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Submission, error)

	// FindIssuedBetween finds issued submissions whose issue date falls in [from, to]
	FindIssuedBetween(ctx context.Context, from, to time.Time) ([]Submission, error)

	// Save creates or updates a submission
	Save(ctx context.Context, submission *Submission) error

	// SaveWithLock saves a submission with optimistic locking (version check)
	SaveWithLock(ctx context.Context, submission *Submission) error

	// SaveWithPayment saves the submission under its version guard and
	// appends the payment record in the same transaction, so a lock
	// conflict leaves no orphaned history entry
	SaveWithPayment(ctx context.Context, submission *Submission, record *PaymentRecord) error

	// Count counts submissions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// PaymentHistoryRepository reads the append-only payment history. Records
// are only ever written through SubmissionRepository.SaveWithPayment.
type PaymentHistoryRepository interface {
	// FindBySubmission returns all payment records for a submission,
	// oldest first
	FindBySubmission(ctx context.Context, submissionID uuid.UUID) ([]PaymentRecord, error)
}

// PolicyRepository defines the interface for policy definition persistence
type PolicyRepository interface {
	// FindByID finds a policy definition by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*PolicyDefinition, error)

	// FindByName finds a policy definition by its exact name
	FindByName(ctx context.Context, name string) (*PolicyDefinition, error)

	// FindAll returns all policy definitions
	FindAll(ctx context.Context, filter shared.Filter) ([]PolicyDefinition, error)

	// Save creates or updates a policy definition
	Save(ctx context.Context, policy *PolicyDefinition) error
}
