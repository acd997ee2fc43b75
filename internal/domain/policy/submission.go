package policy

import (
	"time"

	"github.com/agencyops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubmissionStatus represents the lifecycle state of a submission
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusIssued   SubmissionStatus = "issued"
	SubmissionStatusDeclined SubmissionStatus = "declined"
)

// Attachment describes one uploaded supporting document. The file itself
// lives in object storage; the submission only keeps the descriptor list,
// and only ever appends to it.
type Attachment struct {
	Name        string `json:"name"`
	StorageKey  string `json:"storage_key"`
	PublicURL   string `json:"public_url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// Submission is one policy application/issuance record.
// It is the aggregate root for the submission lifecycle: serial assignment,
// issuance, payment scheduling and document attachment.
type Submission struct {
	shared.BaseAggregateRoot
	AgentID           uuid.UUID
	PolicyID          uuid.UUID
	PolicyName        string // denormalized for rollups; source of truth is the policy definition
	SerialNumber      string // empty until a serial is assigned
	ClientName        string
	ClientEmail       string
	PremiumPaid       decimal.Decimal
	PaymentMode       PaymentMode
	AnnualizedPremium decimal.Decimal
	Status            SubmissionStatus
	IssuedAt          *time.Time
	DateIssued        *time.Time // set once, on first transition to issued
	NextPaymentDate   *time.Time
	Attachments       []Attachment
	Finalized         bool
}

// NewSubmission creates a pending submission. The premium is taken as the
// full annual figure; the first due date is seeded from the policy start
// date when it parses, otherwise the submission starts unscheduled.
func NewSubmission(agentID, policyID uuid.UUID, premium decimal.Decimal, mode PaymentMode, policyDate string) (*Submission, error) {
	if agentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AGENT", "Submission requires an owning agent")
	}
	if policyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_POLICY", "Submission requires a policy definition")
	}
	if premium.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PREMIUM", "Premium cannot be negative")
	}

	normalized := NormalizePremium(premium, mode)
	s := &Submission{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AgentID:           agentID,
		PolicyID:          policyID,
		PremiumPaid:       premium,
		PaymentMode:       mode,
		AnnualizedPremium: normalized.AnnualizedPremium,
		Status:            SubmissionStatusPending,
	}

	if due, ok := NextDueDateFrom(policyDate, mode); ok {
		s.NextPaymentDate = &due
	}

	return s, nil
}

// Installment returns the per-cycle amount derived from the stored premium
// and payment mode.
func (s *Submission) Installment() decimal.Decimal {
	return NormalizePremium(s.PremiumPaid, s.PaymentMode).InstallmentAmount
}

// AssignSerial records the serial number gating this submission.
func (s *Submission) AssignSerial(value string) error {
	if value == "" {
		return shared.NewDomainError("INVALID_SERIAL", "Serial value cannot be empty")
	}
	s.SerialNumber = value
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// MarkIssued transitions the submission to issued. DateIssued is written
// only on the first transition; re-issuing after a decline keeps the
// original date. An issued submission with a payment mode always carries a
// next payment date, derived from the issue date if none was seeded.
func (s *Submission) MarkIssued(now time.Time) error {
	if s.Status == SubmissionStatusIssued {
		return shared.NewDomainError("ALREADY_ISSUED", "Submission is already issued")
	}

	s.Status = SubmissionStatusIssued
	s.IssuedAt = &now
	if s.DateIssued == nil {
		issued := DateOnly(now)
		s.DateIssued = &issued
	}
	if s.NextPaymentDate == nil {
		due := NextDueDate(*s.DateIssued, s.PaymentMode)
		s.NextPaymentDate = &due
	}
	s.UpdatedAt = now
	s.IncrementVersion()
	return nil
}

// Decline transitions the submission to declined.
func (s *Submission) Decline(now time.Time) error {
	if s.Status == SubmissionStatusDeclined {
		return shared.NewDomainError("ALREADY_DECLINED", "Submission is already declined")
	}
	s.Status = SubmissionStatusDeclined
	s.UpdatedAt = now
	s.IncrementVersion()
	return nil
}

// RecordPayment satisfies the current due date and rolls the schedule
// forward exactly one period from the previous due date, never from the
// wall clock: late payments do not compress or skip periods. It returns
// the payment history entry to append; the charged amount is the
// installment rounded to 2 decimal places.
func (s *Submission) RecordPayment(now time.Time) (*PaymentRecord, error) {
	if s.Status != SubmissionStatusIssued {
		return nil, shared.NewDomainError("NOT_ISSUED", "Payments can only be recorded on issued submissions")
	}
	if s.NextPaymentDate == nil {
		return nil, shared.NewDomainError("UNSCHEDULED", "Submission has no payment schedule")
	}

	periodCovered := *s.NextPaymentDate
	record := NewPaymentRecord(s.ID, s.Installment(), periodCovered, now)

	next := NextDueDate(periodCovered, s.PaymentMode)
	s.NextPaymentDate = &next
	s.UpdatedAt = now
	s.IncrementVersion()
	return record, nil
}

// AddAttachment appends an uploaded document descriptor.
func (s *Submission) AddAttachment(att Attachment) error {
	if att.Name == "" || att.StorageKey == "" {
		return shared.NewDomainError("INVALID_ATTACHMENT", "Attachment requires a name and storage key")
	}
	s.Attachments = append(s.Attachments, att)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Finalize marks the submission's documents as fully submitted.
func (s *Submission) Finalize(now time.Time) {
	s.Finalized = true
	s.UpdatedAt = now
	s.IncrementVersion()
}

// IsIssued returns true if the submission has been issued
func (s *Submission) IsIssued() bool {
	return s.Status == SubmissionStatusIssued
}

// IsPending reports whether the submission is still awaiting a decision:
// neither issued nor declined.
func (s *Submission) IsPending() bool {
	return s.Status != SubmissionStatusIssued && s.Status != SubmissionStatusDeclined
}
