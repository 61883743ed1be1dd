package review

import (
	"context"

	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Type distinguishes product reviews from site-wide testimonials
type Type string

const (
	TypeProduct Type = "product"
	TypeSite    Type = "site"
)

// Review is a customer rating left for a product or for the shop itself.
// Reviews start unfeatured; an administrator promotes them to the home
// page by toggling IsFeatured.
type Review struct {
	shared.BaseEntity
	ProductID    *uuid.UUID
	CustomerName string
	Rating       int
	Comment      string
	Type         Type
	IsFeatured   bool
}

// New creates a new review. productID is required for product reviews
// and ignored for site reviews.
func New(reviewType Type, productID *uuid.UUID, customerName string, rating int, comment string) (*Review, error) {
	if customerName == "" {
		return nil, shared.NewDomainError("VALIDATION", "Reviewer name is required")
	}
	if comment == "" {
		return nil, shared.NewDomainError("VALIDATION", "Review comment is required")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("VALIDATION", "Rating must be between 1 and 5")
	}

	switch reviewType {
	case TypeProduct:
		if productID == nil {
			return nil, shared.NewDomainError("VALIDATION", "Product ID is required for product reviews")
		}
	case TypeSite:
		productID = nil
	default:
		return nil, shared.NewDomainError("VALIDATION", "Unknown review type")
	}

	return &Review{
		BaseEntity:   shared.NewBaseEntity(),
		ProductID:    productID,
		CustomerName: customerName,
		Rating:       rating,
		Comment:      comment,
		Type:         reviewType,
		IsFeatured:   false,
	}, nil
}

// ToggleFeatured flips the featured flag and returns the new value
func (r *Review) ToggleFeatured() bool {
	r.IsFeatured = !r.IsFeatured
	return r.IsFeatured
}

// Repository defines the interface for review persistence
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Review, error)
	FindFeatured(ctx context.Context) ([]Review, error)
	FindAll(ctx context.Context) ([]Review, error)
	Save(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}
