package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/agencyops/backend/internal/domain/hierarchy"
	"github.com/agencyops/backend/internal/infrastructure/auth"
	"github.com/agencyops/backend/internal/infrastructure/config"
)

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*hierarchy.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hierarchy.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByEmail(ctx context.Context, email string) (*hierarchy.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hierarchy.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByRole(ctx context.Context, role hierarchy.Role) ([]*hierarchy.Profile, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hierarchy.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindDirectReports(ctx context.Context, id uuid.UUID) ([]*hierarchy.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hierarchy.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindAll(ctx context.Context) ([]*hierarchy.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hierarchy.Profile), args.Error(1)
}

func (m *MockProfileRepository) Save(ctx context.Context, p *hierarchy.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func newTestIdentityService(profiles *MockProfileRepository) *Service {
	jwtSvc := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "agencyops-test",
		MaxRefreshCount:        3,
	})
	return NewService(profiles, jwtSvc, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func testProfile(t *testing.T, password string) *hierarchy.Profile {
	t.Helper()
	p, err := hierarchy.NewProfile("Maria", "Santos", "maria@example.com", hierarchy.RoleAgencyLeader, nil)
	assert.NoError(t, err)
	hash, err := auth.HashPassword(password)
	assert.NoError(t, err)
	p.SetCredentials(hash)
	return p
}

func TestLogin_Success(t *testing.T) {
	profiles := new(MockProfileRepository)
	svc := newTestIdentityService(profiles)
	p := testProfile(t, "s3cret")
	profiles.On("FindByEmail", mock.Anything, "maria@example.com").Return(p, nil)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "maria@example.com", Password: "s3cret"})
	assert.NoError(t, err)
	assert.Equal(t, "Maria Santos", resp.Profile.DisplayName)
	assert.Equal(t, "AL", resp.Profile.Role)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	profiles := new(MockProfileRepository)
	svc := newTestIdentityService(profiles)
	p := testProfile(t, "s3cret")
	profiles.On("FindByEmail", mock.Anything, "maria@example.com").Return(p, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "maria@example.com", Password: "wrong"})
	assert.Error(t, err)
}

func TestRefresh_RoundTrip(t *testing.T) {
	profiles := new(MockProfileRepository)
	svc := newTestIdentityService(profiles)
	p := testProfile(t, "s3cret")
	profiles.On("FindByEmail", mock.Anything, "maria@example.com").Return(p, nil)

	login, err := svc.Login(context.Background(), LoginRequest{Email: "maria@example.com", Password: "s3cret"})
	assert.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: login.Tokens.RefreshToken})
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	profiles := new(MockProfileRepository)
	svc := newTestIdentityService(profiles)
	p := testProfile(t, "s3cret")
	profiles.On("FindByEmail", mock.Anything, "maria@example.com").Return(p, nil)

	login, err := svc.Login(context.Background(), LoginRequest{Email: "maria@example.com", Password: "s3cret"})
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(context.Background(), LogoutRequest{RefreshToken: login.Tokens.RefreshToken}))

	_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: login.Tokens.RefreshToken})
	assert.Error(t, err)
}

func TestLogout_InvalidTokenIsNoop(t *testing.T) {
	profiles := new(MockProfileRepository)
	svc := newTestIdentityService(profiles)
	assert.NoError(t, svc.Logout(context.Background(), LogoutRequest{RefreshToken: "garbage"}))
}
