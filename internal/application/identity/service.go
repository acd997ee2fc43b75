package identity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/agencyops/backend/internal/domain/hierarchy"
	"github.com/agencyops/backend/internal/domain/shared"
	"github.com/agencyops/backend/internal/infrastructure/auth"
)

// Service handles authentication against the profile roster
type Service struct {
	profiles  hierarchy.Repository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewService creates a new identity service
func NewService(profiles hierarchy.Repository, jwt *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *Service {
	return &Service{
		profiles:  profiles,
		jwt:       jwt,
		blacklist: blacklist,
		logger:    logger,
	}
}

// Login verifies credentials and returns a token pair with the role claim
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	profile, err := s.profiles.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Warn("login attempt for unknown email", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !auth.VerifyPassword(profile.PasswordHash, req.Password) {
		s.logger.Warn("invalid password attempt", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	tokens, err := s.jwt.GenerateTokenPair(auth.GenerateTokenInput{
		ProfileID: profile.ID,
		Email:     profile.Email,
		Role:      string(profile.Role),
	})
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate tokens")
	}

	s.logger.Info("login succeeded",
		zap.String("profile_id", profile.ID.String()),
		zap.String("role", string(profile.Role)))

	return &LoginResponse{
		Profile: ProfileInfo{
			ID:          profile.ID,
			DisplayName: profile.DisplayName(),
			Email:       profile.Email,
			Role:        string(profile.Role),
		},
		Tokens: tokens,
	}, nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new pair
func (s *Service) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("blacklist lookup failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify token")
	}
	if revoked {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Refresh token has been revoked")
	}

	tokens, err := s.jwt.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}
	return tokens, nil
}

// Logout revokes the presented refresh token for its remaining lifetime
func (s *Service) Logout(ctx context.Context, req LogoutRequest) error {
	if req.RefreshToken == "" {
		return nil
	}
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		// already invalid, nothing to revoke
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}
	return nil
}
