package serial

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/agencyops/backend/internal/domain/shared"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByValue(ctx context.Context, value string) (*SerialNumber, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SerialNumber), args.Error(1)
}

func (m *MockRepository) FindByLegacyPrefix(ctx context.Context, prefix string) (*SerialNumber, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SerialNumber), args.Error(1)
}

func (m *MockRepository) ClaimUnissued(ctx context.Context, serialType SerialType) (*SerialNumber, error) {
	args := m.Called(ctx, serialType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SerialNumber), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, s *SerialNumber) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockRepository) CountUnissued(ctx context.Context, serialType SerialType) (int64, error) {
	args := m.Called(ctx, serialType)
	return args.Get(0).(int64), args.Error(1)
}

func TestNewSerialNumber(t *testing.T) {
	s, err := NewSerialNumber("123456789", SerialTypeDefault)
	assert.NoError(t, err)
	assert.Equal(t, "123456789", s.Value)
	assert.False(t, s.Issued)
	assert.Equal(t, 1, s.GetVersion())

	_, err = NewSerialNumber("", SerialTypeDefault)
	assert.Error(t, err)

	_, err = NewSerialNumber("12345678a", SerialTypeDefault)
	assert.Error(t, err)

	_, err = NewSerialNumber("123456789", SerialType("bogus"))
	assert.Error(t, err)
}

func TestNewManualSerial(t *testing.T) {
	s, err := NewManualSerial("987654321")
	assert.NoError(t, err)
	assert.Equal(t, SerialTypeManual, s.Type)
	assert.True(t, s.Issued)
}

func TestSerialNumber_MarkIssued(t *testing.T) {
	s, _ := NewSerialNumber("123456789", SerialTypeDefault)

	assert.NoError(t, s.MarkIssued())
	assert.True(t, s.Issued)
	assert.Equal(t, 2, s.GetVersion())

	err := s.MarkIssued()
	assert.Error(t, err)
	var derr *shared.DomainError
	assert.ErrorAs(t, err, &derr)
	assert.Equal(t, "ALREADY_ISSUED", derr.Code)
}

func TestSerialNumber_Promote(t *testing.T) {
	s, _ := NewSerialNumber("12345678", SerialTypeDefault)

	assert.NoError(t, s.Promote("123456789"))
	assert.Equal(t, "123456789", s.Value)

	// idempotent on the same value
	assert.NoError(t, s.Promote("123456789"))
	assert.Equal(t, "123456789", s.Value)

	other, _ := NewSerialNumber("12345678", SerialTypeDefault)
	assert.Error(t, other.Promote("999999999"))
	assert.Error(t, other.Promote("1234567"))

	nine, _ := NewSerialNumber("123456780", SerialTypeDefault)
	assert.Error(t, nine.Promote("123456781"))
}

func TestResolve_ExactMatch(t *testing.T) {
	repo := new(MockRepository)
	stored, _ := NewSerialNumber("123456789", SerialTypeDefault)
	repo.On("FindByValue", mock.Anything, "123456789").Return(stored, nil)

	res, err := Resolve(context.Background(), repo, "123456789")
	assert.NoError(t, err)
	assert.False(t, res.Migrated)
	assert.Equal(t, stored, res.Serial)
	repo.AssertExpectations(t)
}

func TestResolve_LegacyPrefixFallback(t *testing.T) {
	repo := new(MockRepository)
	legacy, _ := NewSerialNumber("12345678", SerialTypeDefault)
	repo.On("FindByValue", mock.Anything, "123456789").Return(nil, shared.ErrNotFound)
	repo.On("FindByLegacyPrefix", mock.Anything, "12345678").Return(legacy, nil)

	res, err := Resolve(context.Background(), repo, "123456789")
	assert.NoError(t, err)
	assert.True(t, res.Migrated)
	assert.Equal(t, legacy, res.Serial)
	repo.AssertExpectations(t)
}

func TestResolve_NoFallbackForLegacyLengthInput(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByValue", mock.Anything, "12345678").Return(nil, shared.ErrNotFound)

	_, err := Resolve(context.Background(), repo, "12345678")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	repo.AssertNotCalled(t, "FindByLegacyPrefix", mock.Anything, mock.Anything)
}

func TestResolve_PrefixMissToo(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByValue", mock.Anything, "123456789").Return(nil, shared.ErrNotFound)
	repo.On("FindByLegacyPrefix", mock.Anything, "12345678").Return(nil, shared.ErrNotFound)

	_, err := Resolve(context.Background(), repo, "123456789")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestResolve_RejectsNonNumeric(t *testing.T) {
	repo := new(MockRepository)
	_, err := Resolve(context.Background(), repo, "abc")
	assert.Error(t, err)
	repo.AssertNotCalled(t, "FindByValue", mock.Anything, mock.Anything)
}
