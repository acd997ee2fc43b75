package identity

import (
	"github.com/google/uuid"

	"github.com/agencyops/backend/internal/infrastructure/auth"
)

// LoginRequest carries agent credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=1,max=200"`
}

// RefreshRequest exchanges a refresh token for a new pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest revokes the presented tokens
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ProfileInfo is the authenticated profile summary returned on login
type ProfileInfo struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
}

// LoginResponse carries the token pair and profile summary
type LoginResponse struct {
	Profile ProfileInfo     `json:"profile"`
	Tokens  *auth.TokenPair `json:"tokens"`
}
