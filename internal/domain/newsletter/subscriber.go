package newsletter

import (
	"context"
	"strings"
	"time"

	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Subscriber is a newsletter recipient
type Subscriber struct {
	shared.BaseEntity
	Email        string
	SubscribedAt time.Time
}

// NewSubscriber creates a new subscriber with a normalized email
func NewSubscriber(email string) (*Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("VALIDATION", "Email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("VALIDATION", "Email is not valid")
	}

	return &Subscriber{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		SubscribedAt: time.Now(),
	}, nil
}

// Repository defines the interface for subscriber persistence
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Subscriber, error)
	FindAll(ctx context.Context) ([]Subscriber, error)
	Save(ctx context.Context, s *Subscriber) error
	Delete(ctx context.Context, id uuid.UUID) error
}
