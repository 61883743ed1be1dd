package persistence

import (
	"context"
	"errors"

	"github.com/dovoc/backend/internal/domain/review"
	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/dovoc/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReviewRepository implements review.Repository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by its ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	var model models.ReviewModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProduct returns all reviews for a product, newest first
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]review.Review, error) {
	var modelList []models.ReviewModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&modelList).Error; err != nil {
		return nil, err
	}
	return reviewModelsToDomain(modelList), nil
}

// FindFeatured returns reviews flagged for the storefront, newest first
func (r *GormReviewRepository) FindFeatured(ctx context.Context) ([]review.Review, error) {
	var modelList []models.ReviewModel
	if err := r.db.WithContext(ctx).
		Where("is_featured = ?", true).
		Order("created_at DESC").
		Find(&modelList).Error; err != nil {
		return nil, err
	}
	return reviewModelsToDomain(modelList), nil
}

// FindAll returns all reviews, newest first
func (r *GormReviewRepository) FindAll(ctx context.Context) ([]review.Review, error) {
	var modelList []models.ReviewModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&modelList).Error; err != nil {
		return nil, err
	}
	return reviewModelsToDomain(modelList), nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, rv *review.Review) error {
	model := models.ReviewModelFromDomain(rv)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a review
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReviewModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func reviewModelsToDomain(modelList []models.ReviewModel) []review.Review {
	reviews := make([]review.Review, len(modelList))
	for i := range modelList {
		reviews[i] = *modelList[i].ToDomain()
	}
	return reviews
}
