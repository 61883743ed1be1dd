package review

import (
	"context"

	"github.com/dovoc/backend/internal/domain/review"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the storefront and admin review operations
type Service struct {
	reviews review.Repository
	logger  *zap.Logger
}

// NewService creates a new review service
func NewService(reviews review.Repository, logger *zap.Logger) *Service {
	return &Service{
		reviews: reviews,
		logger:  logger,
	}
}

// Create records a customer review. Submissions are public; reviews
// only reach the home page once an administrator features them.
func (s *Service) Create(ctx context.Context, req CreateReviewRequest) (*ReviewResponse, error) {
	r, err := review.New(review.Type(req.Type), req.ProductID, req.CustomerName, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.reviews.Save(ctx, r); err != nil {
		return nil, err
	}

	resp := ToReviewResponse(r)
	return &resp, nil
}

// ListByProduct retrieves the reviews of one product
func (s *Service) ListByProduct(ctx context.Context, productID uuid.UUID) ([]ReviewResponse, error) {
	reviews, err := s.reviews.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toReviewResponses(reviews), nil
}

// ListFeatured retrieves the reviews featured on the home page
func (s *Service) ListFeatured(ctx context.Context) ([]ReviewResponse, error) {
	reviews, err := s.reviews.FindFeatured(ctx)
	if err != nil {
		return nil, err
	}
	return toReviewResponses(reviews), nil
}

// List retrieves all reviews, newest first
func (s *Service) List(ctx context.Context) ([]ReviewResponse, error) {
	reviews, err := s.reviews.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toReviewResponses(reviews), nil
}

// ToggleFeatured flips a review's featured flag
func (s *Service) ToggleFeatured(ctx context.Context, id uuid.UUID) (*ReviewResponse, error) {
	r, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.ToggleFeatured()
	if err := s.reviews.Save(ctx, r); err != nil {
		return nil, err
	}

	resp := ToReviewResponse(r)
	return &resp, nil
}

// Delete removes a review
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.reviews.Delete(ctx, id)
}
