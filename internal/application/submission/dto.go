package submission

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agencyops/backend/internal/domain/policy"
)

// SubmitRequest represents a new policy application. PremiumPaid arrives as a
// raw string because legacy forms send formatted amounts; non-numeric input
// coerces to zero rather than rejecting the submission.
type SubmitRequest struct {
	PolicyID      uuid.UUID `json:"policy_id" binding:"required"`
	SerialNumber  string    `json:"serial_number" binding:"required,min=1,max=20"`
	PremiumPaid   string    `json:"premium_paid"`
	ModeOfPayment string    `json:"mode_of_payment" binding:"max=50"`
	PolicyDate    string    `json:"policy_date" binding:"max=30"`
	ClientName    string    `json:"client_name" binding:"required,min=1,max=200"`
	ClientEmail   string    `json:"client_email" binding:"omitempty,email,max=200"`
	AgentID       uuid.UUID `json:"-"` // set from JWT context, not from request body
}

// UploadDocumentRequest carries one multipart file for a submission
type UploadDocumentRequest struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AttachmentResponse describes one stored document
type AttachmentResponse struct {
	Name        string `json:"name"`
	StorageKey  string `json:"storage_key"`
	PublicURL   string `json:"public_url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// RecordPaymentResponse reports the outcome of recording one payment
type RecordPaymentResponse struct {
	NextDate      string          `json:"next_date"`
	AmountCharged decimal.Decimal `json:"amount_charged"`
	PeriodCovered string          `json:"period_covered"`
}

// PaymentRecordResponse is one payment history entry
type PaymentRecordResponse struct {
	ID            uuid.UUID       `json:"id"`
	SubmissionID  uuid.UUID       `json:"submission_id"`
	AmountCharged decimal.Decimal `json:"amount_charged"`
	PeriodCovered string          `json:"period_covered"`
	PaidAt        time.Time       `json:"paid_at"`
}

// SubmissionResponse represents a submission in API responses
type SubmissionResponse struct {
	ID                uuid.UUID            `json:"id"`
	AgentID           uuid.UUID            `json:"agent_id"`
	PolicyID          uuid.UUID            `json:"policy_id"`
	PolicyName        string               `json:"policy_name"`
	SerialNumber      string               `json:"serial_number"`
	ClientName        string               `json:"client_name"`
	ClientEmail       string               `json:"client_email"`
	PremiumPaid       decimal.Decimal      `json:"premium_paid"`
	ModeOfPayment     string               `json:"mode_of_payment"`
	AnnualizedPremium decimal.Decimal      `json:"annualized_premium"`
	InstallmentAmount decimal.Decimal      `json:"installment_amount"`
	Status            string               `json:"status"`
	IssuedAt          *time.Time           `json:"issued_at,omitempty"`
	DateIssued        *string              `json:"date_issued,omitempty"`
	NextPaymentDate   *string              `json:"next_payment_date,omitempty"`
	Attachments       []AttachmentResponse `json:"attachments"`
	Finalized         bool                 `json:"finalized"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	Version           int                  `json:"version"`
}

func toSubmissionResponse(s *policy.Submission) *SubmissionResponse {
	resp := &SubmissionResponse{
		ID:                s.ID,
		AgentID:           s.AgentID,
		PolicyID:          s.PolicyID,
		PolicyName:        s.PolicyName,
		SerialNumber:      s.SerialNumber,
		ClientName:        s.ClientName,
		ClientEmail:       s.ClientEmail,
		PremiumPaid:       s.PremiumPaid,
		ModeOfPayment:     string(s.PaymentMode),
		AnnualizedPremium: s.AnnualizedPremium,
		InstallmentAmount: s.Installment(),
		Status:            string(s.Status),
		IssuedAt:          s.IssuedAt,
		Attachments:       make([]AttachmentResponse, 0, len(s.Attachments)),
		Finalized:         s.Finalized,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		Version:           s.Version,
	}
	if s.DateIssued != nil {
		d := s.DateIssued.Format(policy.DateLayout)
		resp.DateIssued = &d
	}
	if s.NextPaymentDate != nil {
		d := s.NextPaymentDate.Format(policy.DateLayout)
		resp.NextPaymentDate = &d
	}
	for _, att := range s.Attachments {
		resp.Attachments = append(resp.Attachments, AttachmentResponse{
			Name:        att.Name,
			StorageKey:  att.StorageKey,
			PublicURL:   att.PublicURL,
			Size:        att.Size,
			ContentType: att.ContentType,
		})
	}
	return resp
}
