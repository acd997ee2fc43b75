package hierarchy

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) FindByRole(ctx context.Context, role Role) ([]*Profile, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Profile), args.Error(1)
}

func (m *MockRepository) FindDirectReports(ctx context.Context, id uuid.UUID) ([]*Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Profile), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context) ([]*Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Profile), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, p *Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func TestProfile_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		last     string
		legacy   string
		expected string
	}{
		{"full name", "Maria", "Santos", "M. Santos", "Maria Santos"},
		{"first only", "Maria", "", "", "Maria"},
		{"last only", "", "Santos", "", "Santos"},
		{"legacy fallback", "", "", "M. Santos", "M. Santos"},
		{"legacy with spaces", "  ", "", "  M. Santos  ", "M. Santos"},
		{"nothing", "", "", "", "Unknown Agent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Profile{FirstName: tt.first, LastName: tt.last, LegacyName: tt.legacy}
			assert.Equal(t, tt.expected, p.DisplayName())
		})
	}
}

func TestNewProfile(t *testing.T) {
	p, err := NewProfile("Maria", "Santos", "maria@example.com", RoleAgencyPartner, nil)
	assert.NoError(t, err)
	assert.Equal(t, RoleAgencyPartner, p.Role)

	_, err = NewProfile("Maria", "Santos", "", RoleAgencyPartner, nil)
	assert.Error(t, err)

	_, err = NewProfile("Maria", "Santos", "maria@example.com", Role("CEO"), nil)
	assert.Error(t, err)
}

func TestRole(t *testing.T) {
	assert.True(t, RoleAgencyLeader.IsLeadership())
	assert.True(t, RoleManagingPartner.IsLeadership())
	assert.False(t, RoleAgencyPartner.IsLeadership())
	assert.False(t, Role("").Valid())
}

func TestProfile_CreatedOnOrBefore(t *testing.T) {
	p := &Profile{}
	p.CreatedAt = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	assert.True(t, p.CreatedOnOrBefore(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.CreatedOnOrBefore(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.CreatedOnOrBefore(time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)))
}

func TestSubtree_AgencyPartner(t *testing.T) {
	repo := new(MockRepository)
	ap, _ := NewProfile("A", "P", "ap@example.com", RoleAgencyPartner, nil)

	ids, err := Subtree(context.Background(), repo, ap)
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{ap.ID}, ids)
	repo.AssertNotCalled(t, "FindDirectReports", mock.Anything, mock.Anything)
}

func TestSubtree_AgencyLeader(t *testing.T) {
	repo := new(MockRepository)
	al, _ := NewProfile("A", "L", "al@example.com", RoleAgencyLeader, nil)
	ap1, _ := NewProfile("One", "", "ap1@example.com", RoleAgencyPartner, &al.ID)
	ap2, _ := NewProfile("Two", "", "ap2@example.com", RoleAgencyPartner, &al.ID)
	repo.On("FindDirectReports", mock.Anything, al.ID).Return([]*Profile{ap1, ap2}, nil)

	ids, err := Subtree(context.Background(), repo, al)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{al.ID, ap1.ID, ap2.ID}, ids)
}

func TestSubtree_ManagingPartner(t *testing.T) {
	repo := new(MockRepository)
	mp, _ := NewProfile("M", "P", "mp@example.com", RoleManagingPartner, nil)
	al, _ := NewProfile("A", "L", "al@example.com", RoleAgencyLeader, &mp.ID)
	ap, _ := NewProfile("A", "P", "ap@example.com", RoleAgencyPartner, &al.ID)
	repo.On("FindDirectReports", mock.Anything, mp.ID).Return([]*Profile{al}, nil)
	repo.On("FindDirectReports", mock.Anything, al.ID).Return([]*Profile{ap}, nil)

	ids, err := Subtree(context.Background(), repo, mp)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{mp.ID, al.ID, ap.ID}, ids)
}
