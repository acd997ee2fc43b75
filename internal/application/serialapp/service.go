package serialapp

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/agencyops/backend/internal/domain/policy"
	"github.com/agencyops/backend/internal/domain/serial"
	"github.com/agencyops/backend/internal/domain/shared"
)

// Service handles serial provisioning and resolution
type Service struct {
	serials  serial.Repository
	policies policy.PolicyRepository
	logger   *zap.Logger
}

// NewService creates a new serial service
func NewService(serials serial.Repository, policies policy.PolicyRepository, logger *zap.Logger) *Service {
	return &Service{
		serials:  serials,
		policies: policies,
		logger:   logger,
	}
}

// Provision claims a serial for the given policy type. System categories
// take one unissued serial from their pool; manual-category products
// register the caller's own value, creating it on first use.
func (s *Service) Provision(ctx context.Context, req ProvisionRequest) (*ProvisionResponse, error) {
	category := s.categoryFor(ctx, req.PolicyType)

	if category == policy.CategoryManual {
		return s.provisionManual(ctx, req.SerialNumber)
	}

	pool := serial.SerialTypeDefault
	if category == policy.CategoryAllianzWell {
		pool = serial.SerialTypeAllianzWell
	}

	claimed, err := s.serials.ClaimUnissued(ctx, pool)
	if err != nil {
		if errors.Is(err, shared.ErrSerialExhausted) {
			s.logger.Warn("serial pool exhausted",
				zap.String("policy_type", req.PolicyType),
				zap.String("pool", string(pool)))
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	s.logger.Info("serial provisioned",
		zap.String("serial", claimed.Value),
		zap.String("pool", string(pool)))

	return &ProvisionResponse{
		SerialNumber: claimed.Value,
		SerialType:   string(claimed.Type),
		IssuedAt:     claimed.UpdatedAt,
	}, nil
}

func (s *Service) provisionManual(ctx context.Context, value string) (*ProvisionResponse, error) {
	if value == "" {
		return nil, shared.NewDomainError("INVALID_SERIAL", "Manual policies require a serial value")
	}

	existing, err := s.serials.FindByValue(ctx, value)
	switch {
	case err == nil:
		if !existing.Issued {
			if err := existing.MarkIssued(); err != nil {
				return nil, err
			}
			if err := s.serials.Save(ctx, existing); err != nil {
				return nil, err
			}
		}
		return &ProvisionResponse{
			SerialNumber: existing.Value,
			SerialType:   string(existing.Type),
			IssuedAt:     existing.UpdatedAt,
		}, nil
	case errors.Is(err, shared.ErrNotFound):
		created, err := serial.NewManualSerial(value)
		if err != nil {
			return nil, err
		}
		if err := s.serials.Save(ctx, created); err != nil {
			return nil, err
		}
		return &ProvisionResponse{
			SerialNumber: created.Value,
			SerialType:   string(created.Type),
			IssuedAt:     created.CreatedAt,
		}, nil
	default:
		return nil, err
	}
}

// Resolve finds the record behind a serial value, exposing whether the
// match went through the legacy prefix scheme.
func (s *Service) Resolve(ctx context.Context, req ResolveRequest) (*ResolveResponse, error) {
	res, err := serial.Resolve(ctx, s.serials, req.SerialNumber)
	if err != nil {
		return nil, err
	}
	return &ResolveResponse{
		SerialNumber: res.Serial.Value,
		SerialType:   string(res.Serial.Type),
		Issued:       res.Serial.Issued,
		Migrated:     res.Migrated,
	}, nil
}

// Unissued returns how many serials remain in a pool
func (s *Service) Unissued(ctx context.Context, serialType serial.SerialType) (int64, error) {
	return s.serials.CountUnissued(ctx, serialType)
}

// categoryFor maps a policy-type label to a provisioning category. Known
// products use their stored category; unknown labels fall back to matching
// the label itself.
func (s *Service) categoryFor(ctx context.Context, policyType string) policy.PolicyCategory {
	if def, err := s.policies.FindByName(ctx, policyType); err == nil {
		return def.Category
	}
	label := strings.ToLower(policyType)
	switch {
	case strings.Contains(label, "allianz well"):
		return policy.CategoryAllianzWell
	case strings.Contains(label, "manual"):
		return policy.CategoryManual
	default:
		return policy.CategoryStandard
	}
}
