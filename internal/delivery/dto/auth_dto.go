package dto

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest creates a user inside a tenant. TenantID is omitted only
// for platform-level accounts.
type RegisterRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=8"`
	FullName string     `json:"full_name" validate:"required,max=255"`
	RoleID   int        `json:"role_id" validate:"required"`
	TenantID *uuid.UUID `json:"tenant_id,omitempty"`
}

// LoginRequest authenticates a user. Tenant is an optional hint, either a
// tenant ID or a subdomain; when present the user lookup is scoped to it.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Tenant   string `json:"tenant,omitempty"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	RoleID    int        `json:"role_id"`
	RoleName  string     `json:"role_name,omitempty"`
	TenantID  *uuid.UUID `json:"tenant_id,omitempty"`
	IsActive  *bool      `json:"is_active,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AuthResponse carries the issued token pair plus the user view.
type AuthResponse struct {
	User   *UserResponse  `json:"user"`
	Tokens *TokenResponse `json:"tokens"`
}
