package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/studioerp/backend/internal/domain/identity"
)

// RegisterRequest represents a request to create a user account
type RegisterRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6,max=72"`
	Role       string `json:"role" binding:"omitempty,oneof='Super Admin' Admin Designer Manager User"`
	Phone      string `json:"phone" binding:"max=50"`
	Department string `json:"department" binding:"max=100"`
}

// UpdateUserRequest represents a partial update to a user
type UpdateUserRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Role       *string `json:"role" binding:"omitempty,oneof='Super Admin' Admin Designer Manager User"`
	Phone      *string `json:"phone" binding:"omitempty,max=50"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Avatar     *string `json:"avatar"`
	Active     *bool   `json:"active"`
}

// ChangePasswordRequest changes the calling user's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=72"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents a user in API responses. The password hash is never
// exposed.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Phone       string     `json:"phone"`
	Department  string     `json:"department"`
	Avatar      string     `json:"avatar"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToUserResponse maps a domain user to its API representation
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Phone:       u.Phone,
		Department:  u.Department,
		Avatar:      u.Avatar,
		Active:      u.Active,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// LoginResponse carries the issued token and its user
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}
