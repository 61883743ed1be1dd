package identity

import (
	"context"

	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// Role represents the back-office role of a user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User is a back-office account. Passwords are stored only as bcrypt
// hashes; the plaintext never leaves the login path.
type User struct {
	shared.BaseEntity
	Username     string
	PasswordHash string
	Name         string
	Email        string
	Role         Role
}

// NewUser creates a new user with a hashed password
func NewUser(username, password, name, email string, role Role) (*User, error) {
	if username == "" {
		return nil, shared.NewDomainError("VALIDATION", "Username is required")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("VALIDATION", "Password must be at least 8 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("VALIDATION", "Unknown role")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Email:        email,
		Role:         role,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// ChangePassword replaces the stored hash
func (u *User) ChangePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("VALIDATION", "Password must be at least 8 characters")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// UpdateProfile updates the display fields
func (u *User) UpdateProfile(name, email string, role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("VALIDATION", "Unknown role")
	}
	u.Name = name
	u.Email = email
	u.Role = role
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", shared.NewDomainError("INTERNAL", "Failed to hash password")
	}
	return string(hash), nil
}

// Repository defines the interface for user persistence
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Save(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
