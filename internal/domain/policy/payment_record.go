package policy

import (
	"time"

	"github.com/agencyops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRecord is one append-only payment history entry. Amounts are
// rounded to 2 decimal places before persistence; records are never
// updated or deleted.
type PaymentRecord struct {
	shared.BaseEntity
	SubmissionID  uuid.UUID
	AmountCharged decimal.Decimal // the installment amount, not the total premium
	PeriodCovered time.Time       // the due date this payment satisfies
	PaidAt        time.Time
}

// NewPaymentRecord creates a payment history entry with the amount rounded
// to 2 decimal places.
func NewPaymentRecord(submissionID uuid.UUID, amount decimal.Decimal, periodCovered, paidAt time.Time) *PaymentRecord {
	return &PaymentRecord{
		BaseEntity:    shared.NewBaseEntity(),
		SubmissionID:  submissionID,
		AmountCharged: amount.Round(2),
		PeriodCovered: DateOnly(periodCovered),
		PaidAt:        paidAt,
	}
}
