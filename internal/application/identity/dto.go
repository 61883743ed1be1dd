package identity

import (
	"time"

	"github.com/dovoc/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginRequest carries the back-office login form
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=1,max=200"`
}

// LoginResponse carries the issued token and its owner
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// CreateUserRequest carries the admin user form
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8,max=200"`
	Name     string `json:"name" binding:"max=200"`
	Email    string `json:"email" binding:"omitempty,email"`
	Role     string `json:"role" binding:"required,oneof=admin staff"`
}

// UpdateUserRequest carries the admin user edit form. Password is
// optional; when empty the stored hash is kept.
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"max=200"`
	Email    string `json:"email" binding:"omitempty,email"`
	Role     string `json:"role" binding:"required,oneof=admin staff"`
	Password string `json:"password" binding:"omitempty,min=8,max=200"`
}

// UserResponse represents a user in API responses. The password hash
// never appears on the wire.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converts a domain user to its API shape
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
