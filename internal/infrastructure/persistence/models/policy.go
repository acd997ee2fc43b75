package models

import (
	"encoding/json"
	"time"

	"github.com/agencyops/backend/internal/domain/policy"
	"github.com/agencyops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubmissionModel is the GORM model for policy submissions
type SubmissionModel struct {
	AggregateModel
	AgentID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	PolicyID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	PolicyName        string          `gorm:"size:255"`
	SerialNumber      string          `gorm:"size:16;uniqueIndex"`
	ClientName        string          `gorm:"size:255"`
	ClientEmail       string          `gorm:"size:255"`
	PremiumPaid       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentMode       string          `gorm:"size:32;not null"`
	AnnualizedPremium decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status            string          `gorm:"size:16;not null;index"`
	IssuedAt          *time.Time
	DateIssued        *time.Time `gorm:"index"`
	NextPaymentDate   *time.Time
	Attachments       string `gorm:"type:jsonb;default:'[]'"`
	Finalized         bool   `gorm:"not null;default:false"`
}

// TableName specifies the table name for SubmissionModel
func (SubmissionModel) TableName() string {
	return "submissions"
}

// ToDomain converts SubmissionModel to domain Submission
func (m *SubmissionModel) ToDomain() *policy.Submission {
	var attachments []policy.Attachment
	if m.Attachments != "" {
		// a row hand-edited to hold bad JSON degrades to no attachments
		_ = json.Unmarshal([]byte(m.Attachments), &attachments)
	}

	return &policy.Submission{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		AgentID:           m.AgentID,
		PolicyID:          m.PolicyID,
		PolicyName:        m.PolicyName,
		SerialNumber:      m.SerialNumber,
		ClientName:        m.ClientName,
		ClientEmail:       m.ClientEmail,
		PremiumPaid:       m.PremiumPaid,
		PaymentMode:       policy.PaymentMode(m.PaymentMode),
		AnnualizedPremium: m.AnnualizedPremium,
		Status:            policy.SubmissionStatus(m.Status),
		IssuedAt:          m.IssuedAt,
		DateIssued:        m.DateIssued,
		NextPaymentDate:   m.NextPaymentDate,
		Attachments:       attachments,
		Finalized:         m.Finalized,
	}
}

// SubmissionModelFromDomain converts domain Submission to SubmissionModel
func SubmissionModelFromDomain(s *policy.Submission) *SubmissionModel {
	attachments := "[]"
	if len(s.Attachments) > 0 {
		if data, err := json.Marshal(s.Attachments); err == nil {
			attachments = string(data)
		}
	}

	model := &SubmissionModel{
		AgentID:           s.AgentID,
		PolicyID:          s.PolicyID,
		PolicyName:        s.PolicyName,
		SerialNumber:      s.SerialNumber,
		ClientName:        s.ClientName,
		ClientEmail:       s.ClientEmail,
		PremiumPaid:       s.PremiumPaid,
		PaymentMode:       string(s.PaymentMode),
		AnnualizedPremium: s.AnnualizedPremium,
		Status:            string(s.Status),
		IssuedAt:          s.IssuedAt,
		DateIssued:        s.DateIssued,
		NextPaymentDate:   s.NextPaymentDate,
		Attachments:       attachments,
		Finalized:         s.Finalized,
	}
	model.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return model
}

// PaymentRecordModel is the GORM model for payment history entries
type PaymentRecordModel struct {
	BaseModel
	SubmissionID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	AmountCharged decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PeriodCovered time.Time       `gorm:"not null"`
	PaidAt        time.Time       `gorm:"not null"`
}

// TableName specifies the table name for PaymentRecordModel
func (PaymentRecordModel) TableName() string {
	return "payment_records"
}

// ToDomain converts PaymentRecordModel to domain PaymentRecord
func (m *PaymentRecordModel) ToDomain() *policy.PaymentRecord {
	return &policy.PaymentRecord{
		BaseEntity:    m.BaseModel.ToDomain(),
		SubmissionID:  m.SubmissionID,
		AmountCharged: m.AmountCharged,
		PeriodCovered: m.PeriodCovered,
		PaidAt:        m.PaidAt,
	}
}

// PaymentRecordModelFromDomain converts domain PaymentRecord to PaymentRecordModel
func PaymentRecordModelFromDomain(r *policy.PaymentRecord) *PaymentRecordModel {
	model := &PaymentRecordModel{
		SubmissionID:  r.SubmissionID,
		AmountCharged: r.AmountCharged,
		PeriodCovered: r.PeriodCovered,
		PaidAt:        r.PaidAt,
	}
	model.FromDomainBaseEntity(r.BaseEntity)
	return model
}

// PolicyModel is the GORM model for policy product definitions
type PolicyModel struct {
	AggregateModel
	Name     string `gorm:"size:255;not null;uniqueIndex"`
	Category string `gorm:"size:32;not null"`
}

// TableName specifies the table name for PolicyModel
func (PolicyModel) TableName() string {
	return "policies"
}

// ToDomain converts PolicyModel to domain PolicyDefinition
func (m *PolicyModel) ToDomain() *policy.PolicyDefinition {
	return &policy.PolicyDefinition{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		Name:     m.Name,
		Category: policy.PolicyCategory(m.Category),
	}
}

// PolicyModelFromDomain converts domain PolicyDefinition to PolicyModel
func PolicyModelFromDomain(p *policy.PolicyDefinition) *PolicyModel {
	model := &PolicyModel{
		Name:     p.Name,
		Category: string(p.Category),
	}
	model.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return model
}
