package submission

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agencyops/backend/internal/domain/policy"
	"github.com/agencyops/backend/internal/domain/serial"
	"github.com/agencyops/backend/internal/domain/shared"
)

// Service handles the submission lifecycle: intake, issuance, payments,
// documents and finalization.
type Service struct {
	submissions policy.SubmissionRepository
	payments    policy.PaymentHistoryRepository
	policies    policy.PolicyRepository
	serials     serial.Repository
	storage     ObjectStorage
	mailer      Mailer
	logger      *zap.Logger
}

// NewService creates a new submission service
func NewService(
	submissions policy.SubmissionRepository,
	payments policy.PaymentHistoryRepository,
	policies policy.PolicyRepository,
	serials serial.Repository,
	storage ObjectStorage,
	mailer Mailer,
	logger *zap.Logger,
) *Service {
	return &Service{
		submissions: submissions,
		payments:    payments,
		policies:    policies,
		serials:     serials,
		storage:     storage,
		mailer:      mailer,
		logger:      logger,
	}
}

// Submit validates the serial, normalizes the premium and persists a new
// pending submission with its payment schedule seeded from the policy date.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*SubmissionResponse, error) {
	def, err := s.policies.FindByID(ctx, req.PolicyID)
	if err != nil {
		return nil, err
	}

	if _, err := serial.Resolve(ctx, s.serials, req.SerialNumber); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SERIAL_NOT_FOUND", "Serial number is not registered")
		}
		return nil, err
	}

	// a serial identifies exactly one submission; the unique index on
	// submissions.serial_number backstops this check under races
	if _, err := s.submissions.FindBySerial(ctx, req.SerialNumber); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Serial number is already attached to a submission")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	premium := policy.ParseAmount(req.PremiumPaid)
	mode := policy.PaymentMode(req.ModeOfPayment)

	sub, err := policy.NewSubmission(req.AgentID, def.ID, premium, mode, req.PolicyDate)
	if err != nil {
		return nil, err
	}
	sub.PolicyName = def.DisplayName()
	sub.ClientName = req.ClientName
	sub.ClientEmail = req.ClientEmail
	if err := sub.AssignSerial(req.SerialNumber); err != nil {
		return nil, err
	}

	if err := s.submissions.Save(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("submission created",
		zap.String("submission_id", sub.ID.String()),
		zap.String("agent_id", sub.AgentID.String()),
		zap.String("policy", sub.PolicyName))

	return toSubmissionResponse(sub), nil
}

// Get loads one submission
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*SubmissionResponse, error) {
	sub, err := s.submissions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSubmissionResponse(sub), nil
}

// ListByAgents returns submissions owned by any of the given agents
func (s *Service) ListByAgents(ctx context.Context, agentIDs []uuid.UUID, filter shared.Filter) ([]SubmissionResponse, error) {
	subs, err := s.submissions.FindByAgents(ctx, agentIDs, filter)
	if err != nil {
		return nil, err
	}
	out := make([]SubmissionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, *toSubmissionResponse(&subs[i]))
	}
	return out, nil
}

// Issue transitions a submission to issued
func (s *Service) Issue(ctx context.Context, id uuid.UUID) (*SubmissionResponse, error) {
	sub, err := s.submissions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sub.MarkIssued(time.Now()); err != nil {
		return nil, err
	}
	if err := s.submissions.SaveWithLock(ctx, sub); err != nil {
		return nil, err
	}
	return toSubmissionResponse(sub), nil
}

// Decline transitions a submission to declined
func (s *Service) Decline(ctx context.Context, id uuid.UUID) (*SubmissionResponse, error) {
	sub, err := s.submissions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sub.Decline(time.Now()); err != nil {
		return nil, err
	}
	if err := s.submissions.SaveWithLock(ctx, sub); err != nil {
		return nil, err
	}
	return toSubmissionResponse(sub), nil
}

// RecordPayment appends exactly one payment history entry and advances the
// schedule one period from the previous due date.
func (s *Service) RecordPayment(ctx context.Context, id uuid.UUID) (*RecordPaymentResponse, error) {
	sub, err := s.submissions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	record, err := sub.RecordPayment(time.Now())
	if err != nil {
		return nil, err
	}

	// one transaction covers both writes; a concurrent update rolls the
	// history entry back along with the schedule advance
	if err := s.submissions.SaveWithPayment(ctx, sub, record); err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("submission_id", sub.ID.String()),
		zap.String("amount", record.AmountCharged.String()),
		zap.String("period_covered", record.PeriodCovered.Format(policy.DateLayout)))

	return &RecordPaymentResponse{
		NextDate:      sub.NextPaymentDate.Format(policy.DateLayout),
		AmountCharged: record.AmountCharged,
		PeriodCovered: record.PeriodCovered.Format(policy.DateLayout),
	}, nil
}

// PaymentHistory returns a submission's payment records, oldest first
func (s *Service) PaymentHistory(ctx context.Context, id uuid.UUID) ([]PaymentRecordResponse, error) {
	if _, err := s.submissions.FindByID(ctx, id); err != nil {
		return nil, err
	}
	records, err := s.payments.FindBySubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, PaymentRecordResponse{
			ID:            r.ID,
			SubmissionID:  r.SubmissionID,
			AmountCharged: r.AmountCharged,
			PeriodCovered: r.PeriodCovered.Format(policy.DateLayout),
			PaidAt:        r.PaidAt,
		})
	}
	return out, nil
}

// UploadDocument stores one supporting document and appends its descriptor
// to the submission.
func (s *Service) UploadDocument(ctx context.Context, id uuid.UUID, req UploadDocumentRequest) (*AttachmentResponse, error) {
	sub, err := s.submissions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := sanitizeFileName(req.FileName)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ATTACHMENT", "File name is required")
	}

	key := fmt.Sprintf("submissions/%s/%s", sub.ID, name)
	publicURL, err := s.storage.Upload(ctx, key, req.ContentType, req.Body, req.Size)
	if err != nil {
		s.logger.Error("document upload failed",
			zap.String("submission_id", sub.ID.String()),
			zap.String("key", key),
			zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_FAILURE", "Failed to store document")
	}

	att := policy.Attachment{
		Name:        name,
		StorageKey:  key,
		PublicURL:   publicURL,
		Size:        req.Size,
		ContentType: req.ContentType,
	}
	if err := sub.AddAttachment(att); err != nil {
		return nil, err
	}
	if err := s.submissions.SaveWithLock(ctx, sub); err != nil {
		return nil, err
	}

	return &AttachmentResponse{
		Name:        att.Name,
		StorageKey:  att.StorageKey,
		PublicURL:   att.PublicURL,
		Size:        att.Size,
		ContentType: att.ContentType,
	}, nil
}

// Finalize marks the submission's documents as fully submitted. A serial
// that resolved through the legacy prefix scheme is promoted to its full
// 9-digit value here. Notification email is best-effort: a send failure is
// logged and never fails the request.
func (s *Service) Finalize(ctx context.Context, id uuid.UUID) (*SubmissionResponse, error) {
	sub, err := s.submissions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := serial.Resolve(ctx, s.serials, sub.SerialNumber)
	if err != nil {
		return nil, err
	}
	if res.Migrated {
		if err := res.Serial.Promote(sub.SerialNumber); err != nil {
			return nil, err
		}
		if err := s.serials.Save(ctx, res.Serial); err != nil {
			return nil, err
		}
		s.logger.Info("serial promoted",
			zap.String("submission_id", sub.ID.String()),
			zap.String("serial", sub.SerialNumber))
	}

	sub.Finalize(time.Now())
	if err := s.submissions.SaveWithLock(ctx, sub); err != nil {
		return nil, err
	}

	if sub.ClientEmail != "" {
		subject := fmt.Sprintf("Documents received for %s", sub.PolicyName)
		body := fmt.Sprintf(
			"Dear %s,\r\n\r\nWe have received the complete documents for your %s application (serial %s). Your agent will contact you with the next steps.\r\n",
			sub.ClientName, sub.PolicyName, sub.SerialNumber)
		if err := s.mailer.Send(ctx, []string{sub.ClientEmail}, subject, body); err != nil {
			s.logger.Warn("finalization email failed",
				zap.String("submission_id", sub.ID.String()),
				zap.Error(err))
		}
	}

	return toSubmissionResponse(sub), nil
}

// sanitizeFileName strips any path components and characters that would
// break a storage key.
func sanitizeFileName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
