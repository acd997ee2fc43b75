package serialapp

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/agencyops/backend/internal/domain/policy"
	"github.com/agencyops/backend/internal/domain/serial"
	"github.com/agencyops/backend/internal/domain/shared"
)

type MockSerialRepository struct {
	mock.Mock
}

func (m *MockSerialRepository) FindByValue(ctx context.Context, value string) (*serial.SerialNumber, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*serial.SerialNumber), args.Error(1)
}

func (m *MockSerialRepository) FindByLegacyPrefix(ctx context.Context, prefix string) (*serial.SerialNumber, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*serial.SerialNumber), args.Error(1)
}

func (m *MockSerialRepository) ClaimUnissued(ctx context.Context, serialType serial.SerialType) (*serial.SerialNumber, error) {
	args := m.Called(ctx, serialType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*serial.SerialNumber), args.Error(1)
}

func (m *MockSerialRepository) Save(ctx context.Context, s *serial.SerialNumber) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSerialRepository) CountUnissued(ctx context.Context, serialType serial.SerialType) (int64, error) {
	args := m.Called(ctx, serialType)
	return args.Get(0).(int64), args.Error(1)
}

type MockPolicyRepository struct {
	mock.Mock
}

func (m *MockPolicyRepository) FindByID(ctx context.Context, id uuid.UUID) (*policy.PolicyDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*policy.PolicyDefinition), args.Error(1)
}

func (m *MockPolicyRepository) FindByName(ctx context.Context, name string) (*policy.PolicyDefinition, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*policy.PolicyDefinition), args.Error(1)
}

func (m *MockPolicyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]policy.PolicyDefinition, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]policy.PolicyDefinition), args.Error(1)
}

func (m *MockPolicyRepository) Save(ctx context.Context, p *policy.PolicyDefinition) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func newTestService(serials *MockSerialRepository, policies *MockPolicyRepository) *Service {
	return NewService(serials, policies, zap.NewNop())
}

func TestProvision_StandardClaimsDefaultPool(t *testing.T) {
	serials := new(MockSerialRepository)
	policies := new(MockPolicyRepository)
	def, _ := policy.NewPolicyDefinition("Azpire Growth", policy.CategoryStandard)
	policies.On("FindByName", mock.Anything, "Azpire Growth").Return(def, nil)

	claimed, _ := serial.NewSerialNumber("123456789", serial.SerialTypeDefault)
	claimed.Issued = true
	serials.On("ClaimUnissued", mock.Anything, serial.SerialTypeDefault).Return(claimed, nil)

	resp, err := newTestService(serials, policies).Provision(context.Background(), ProvisionRequest{PolicyType: "Azpire Growth"})
	assert.NoError(t, err)
	assert.Equal(t, "123456789", resp.SerialNumber)
	serials.AssertExpectations(t)
}

func TestProvision_AllianzWellNeverTouchesDefaultPool(t *testing.T) {
	serials := new(MockSerialRepository)
	policies := new(MockPolicyRepository)
	def, _ := policy.NewPolicyDefinition("Allianz Well", policy.CategoryAllianzWell)
	policies.On("FindByName", mock.Anything, "Allianz Well").Return(def, nil)
	serials.On("ClaimUnissued", mock.Anything, serial.SerialTypeAllianzWell).Return(nil, shared.ErrSerialExhausted)

	_, err := newTestService(serials, policies).Provision(context.Background(), ProvisionRequest{PolicyType: "Allianz Well"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	serials.AssertNotCalled(t, "ClaimUnissued", mock.Anything, serial.SerialTypeDefault)
}

func TestProvision_UnknownLabelFallsBackToLabelMatch(t *testing.T) {
	serials := new(MockSerialRepository)
	policies := new(MockPolicyRepository)
	policies.On("FindByName", mock.Anything, "Allianz Well Plus").Return(nil, shared.ErrNotFound)

	claimed, _ := serial.NewSerialNumber("987654321", serial.SerialTypeAllianzWell)
	serials.On("ClaimUnissued", mock.Anything, serial.SerialTypeAllianzWell).Return(claimed, nil)

	resp, err := newTestService(serials, policies).Provision(context.Background(), ProvisionRequest{PolicyType: "Allianz Well Plus"})
	assert.NoError(t, err)
	assert.Equal(t, string(serial.SerialTypeAllianzWell), resp.SerialType)
}

func TestProvision_ManualCreatesOnAbsence(t *testing.T) {
	serials := new(MockSerialRepository)
	policies := new(MockPolicyRepository)
	def, _ := policy.NewPolicyDefinition("Broker Placement", policy.CategoryManual)
	policies.On("FindByName", mock.Anything, "Broker Placement").Return(def, nil)
	serials.On("FindByValue", mock.Anything, "555555555").Return(nil, shared.ErrNotFound)
	serials.On("Save", mock.Anything, mock.MatchedBy(func(s *serial.SerialNumber) bool {
		return s.Value == "555555555" && s.Type == serial.SerialTypeManual && s.Issued
	})).Return(nil)

	resp, err := newTestService(serials, policies).Provision(context.Background(), ProvisionRequest{
		PolicyType:   "Broker Placement",
		SerialNumber: "555555555",
	})
	assert.NoError(t, err)
	assert.Equal(t, "555555555", resp.SerialNumber)
	serials.AssertExpectations(t)
}

func TestProvision_ManualMarksExistingIssued(t *testing.T) {
	serials := new(MockSerialRepository)
	policies := new(MockPolicyRepository)
	def, _ := policy.NewPolicyDefinition("Broker Placement", policy.CategoryManual)
	policies.On("FindByName", mock.Anything, "Broker Placement").Return(def, nil)

	existing, _ := serial.NewSerialNumber("555555555", serial.SerialTypeManual)
	serials.On("FindByValue", mock.Anything, "555555555").Return(existing, nil)
	serials.On("Save", mock.Anything, existing).Return(nil)

	_, err := newTestService(serials, policies).Provision(context.Background(), ProvisionRequest{
		PolicyType:   "Broker Placement",
		SerialNumber: "555555555",
	})
	assert.NoError(t, err)
	assert.True(t, existing.Issued)
}

func TestProvision_ManualRequiresValue(t *testing.T) {
	serials := new(MockSerialRepository)
	policies := new(MockPolicyRepository)
	def, _ := policy.NewPolicyDefinition("Broker Placement", policy.CategoryManual)
	policies.On("FindByName", mock.Anything, "Broker Placement").Return(def, nil)

	_, err := newTestService(serials, policies).Provision(context.Background(), ProvisionRequest{PolicyType: "Broker Placement"})
	assert.Error(t, err)
}

func TestResolve_PassesThroughMigratedFlag(t *testing.T) {
	serials := new(MockSerialRepository)
	policies := new(MockPolicyRepository)

	legacy, _ := serial.NewSerialNumber("12345678", serial.SerialTypeDefault)
	serials.On("FindByValue", mock.Anything, "123456789").Return(nil, shared.ErrNotFound)
	serials.On("FindByLegacyPrefix", mock.Anything, "12345678").Return(legacy, nil)

	resp, err := newTestService(serials, policies).Resolve(context.Background(), ResolveRequest{SerialNumber: "123456789"})
	assert.NoError(t, err)
	assert.True(t, resp.Migrated)
	assert.Equal(t, "12345678", resp.SerialNumber)
}
