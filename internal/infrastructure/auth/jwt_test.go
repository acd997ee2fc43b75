package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/agencyops/backend/internal/infrastructure/config"
)

func testJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "agencyops-test",
		MaxRefreshCount:        3,
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := testJWTService()
	profileID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		ProfileID: profileID,
		Email:     "agent@example.com",
		Role:      "AP",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, profileID.String(), claims.ProfileID)
	assert.Equal(t, "AP", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	svc := testJWTService()
	pair, err := svc.GenerateTokenPair(GenerateTokenInput{ProfileID: uuid.New(), Role: "AL"})
	assert.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)
	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := testJWTService()
	_, err := svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	svc := testJWTService()
	profileID := uuid.New()
	pair, err := svc.GenerateTokenPair(GenerateTokenInput{ProfileID: profileID, Role: "MP"})
	assert.NoError(t, err)

	refreshed, err := svc.RefreshTokenPair(pair.RefreshToken)
	assert.NoError(t, err)

	claims, err := svc.ValidateAccessToken(refreshed.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, profileID.String(), claims.ProfileID)
	assert.Equal(t, "MP", claims.Role)

	newRefreshClaims, err := svc.ValidateRefreshToken(refreshed.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, 1, newRefreshClaims.RefreshCount)
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	bl := NewInMemoryTokenBlacklist()
	ctx := context.Background()

	blacklisted, err := bl.IsBlacklisted(ctx, "jti-1")
	assert.NoError(t, err)
	assert.False(t, blacklisted)

	assert.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))
	blacklisted, err = bl.IsBlacklisted(ctx, "jti-1")
	assert.NoError(t, err)
	assert.True(t, blacklisted)

	// expired entries fall out
	assert.NoError(t, bl.AddToBlacklist(ctx, "jti-2", -time.Second))
	blacklisted, err = bl.IsBlacklisted(ctx, "jti-2")
	assert.NoError(t, err)
	assert.False(t, blacklisted)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	assert.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}
