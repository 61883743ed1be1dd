package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/dovoc/backend/internal/domain/newsletter"
	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/dovoc/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSubscriberRepository implements newsletter.Repository using GORM
type GormSubscriberRepository struct {
	db *gorm.DB
}

// NewGormSubscriberRepository creates a new GormSubscriberRepository
func NewGormSubscriberRepository(db *gorm.DB) *GormSubscriberRepository {
	return &GormSubscriberRepository{db: db}
}

// FindByEmail finds a subscriber by normalized email
func (r *GormSubscriberRepository) FindByEmail(ctx context.Context, email string) (*newsletter.Subscriber, error) {
	var model models.SubscriberModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all subscribers, oldest subscription first
func (r *GormSubscriberRepository) FindAll(ctx context.Context) ([]newsletter.Subscriber, error) {
	var modelList []models.SubscriberModel
	if err := r.db.WithContext(ctx).
		Order("subscribed_at ASC").
		Find(&modelList).Error; err != nil {
		return nil, err
	}

	subscribers := make([]newsletter.Subscriber, len(modelList))
	for i := range modelList {
		subscribers[i] = *modelList[i].ToDomain()
	}
	return subscribers, nil
}

// Save creates or updates a subscriber
func (r *GormSubscriberRepository) Save(ctx context.Context, s *newsletter.Subscriber) error {
	model := models.SubscriberModelFromDomain(s)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a subscriber
func (r *GormSubscriberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SubscriberModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
