package persistence

import (
	"context"
	"errors"

	"github.com/dovoc/backend/internal/domain/catalog"
	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/dovoc/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all products, newest first
func (r *GormProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	var modelList []models.ProductModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&modelList).Error; err != nil {
		return nil, err
	}
	return productModelsToDomain(modelList), nil
}

// FindByCategory returns all products assigned to a category
func (r *GormProductRepository) FindByCategory(ctx context.Context, categoryID string) ([]catalog.Product, error) {
	var modelList []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Find(&modelList).Error; err != nil {
		return nil, err
	}
	return productModelsToDomain(modelList), nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	model := models.ProductModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func productModelsToDomain(modelList []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(modelList))
	for i := range modelList {
		products[i] = *modelList[i].ToDomain()
	}
	return products
}
