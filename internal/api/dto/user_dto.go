package dto

import (
	"time"

	"github.com/travault/crm-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the access token and its owner.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// CreateUserRequest payload for admin account creation.
type CreateUserRequest struct {
	Username  string          `json:"username" validate:"required"`
	Email     string          `json:"email" validate:"required,email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      domain.UserRole `json:"role" validate:"required"`
	Password  string          `json:"password" validate:"required,min=8"`
}

// UserResponse represents an agency member.
type UserResponse struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	FullName  string          `json:"full_name"`
	Role      domain.UserRole `json:"role"`
}
