package review

import (
	"time"

	"github.com/dovoc/backend/internal/domain/review"
	"github.com/google/uuid"
)

// CreateReviewRequest carries a storefront review submission
type CreateReviewRequest struct {
	Type         string     `json:"type" binding:"required,oneof=product site"`
	ProductID    *uuid.UUID `json:"product_id"`
	CustomerName string     `json:"customer_name" binding:"required,min=1,max=200"`
	Rating       int        `json:"rating" binding:"required,min=1,max=5"`
	Comment      string     `json:"comment" binding:"required,min=1,max=2000"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID           uuid.UUID  `json:"id"`
	Type         string     `json:"type"`
	ProductID    *uuid.UUID `json:"product_id,omitempty"`
	CustomerName string     `json:"customer_name"`
	Rating       int        `json:"rating"`
	Comment      string     `json:"comment"`
	IsFeatured   bool       `json:"is_featured"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToReviewResponse converts a domain review to its API shape
func ToReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		Type:         string(r.Type),
		ProductID:    r.ProductID,
		CustomerName: r.CustomerName,
		Rating:       r.Rating,
		Comment:      r.Comment,
		IsFeatured:   r.IsFeatured,
		CreatedAt:    r.CreatedAt,
	}
}

func toReviewResponses(reviews []review.Review) []ReviewResponse {
	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = ToReviewResponse(&reviews[i])
	}
	return responses
}
