package persistence

import (
	"context"
	"errors"
	"math/rand"

	"github.com/dovoc/backend/internal/domain/order"
	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/dovoc/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// maxNumberAttempts bounds the retry loop when drawing a fresh order number.
const maxNumberAttempts = 20

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its internal ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.position ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an order by its customer-facing number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, number int) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.position ASC")
		}).
		First(&model, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all orders sorted by creation time descending
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]order.Order, error) {
	var modelList []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.position ASC")
		}).
		Order("created_at DESC").
		Find(&modelList).Error; err != nil {
		return nil, err
	}

	orders := make([]order.Order, len(modelList))
	for i := range modelList {
		orders[i] = *modelList[i].ToDomain()
	}
	return orders, nil
}

// Save creates or updates an order together with its line items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Line items are immutable; replace them wholesale on update
		if err := tx.Where("order_id = ?", model.ID).
			Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// IDs are fresh UUIDs, so the only unique index a Save can trip
		// is the one on number: two checkouts drew the same draw.
		return order.ErrNumberTaken
	}
	return err
}

// UpdateStatus conditionally writes the order's current status, guarded by
// the status the caller last observed. A zero-row update means another
// writer moved the order first (or it was deleted concurrently).
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	updates := map[string]interface{}{
		"status":     string(o.Status),
		"updated_at": o.UpdatedAt,
	}
	switch o.Status {
	case order.StatusApproved:
		updates["approved_at"] = o.ApprovedAt
	case order.StatusShipped:
		updates["shipped_at"] = o.ShippedAt
	case order.StatusDelivered:
		updates["delivered_at"] = o.DeliveredAt
	case order.StatusRejected:
		updates["rejected_at"] = o.RejectedAt
	case order.StatusCancelled:
		updates["cancelled_at"] = o.CancelledAt
	}

	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", o.ID, string(expected)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.OrderModel{}).
			Where("id = ?", o.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete hard-deletes an order and its line items regardless of status
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).
			Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.OrderModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountAll counts all orders
func (r *GormOrderRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts orders in the given status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("status = ?", string(status)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumTotalExcluding sums order totals, skipping the given statuses
func (r *GormOrderRepository) SumTotalExcluding(ctx context.Context, excluded ...order.Status) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	if len(excluded) > 0 {
		statuses := make([]string, len(excluded))
		for i, s := range excluded {
			statuses[i] = string(s)
		}
		query = query.Where("status NOT IN ?", statuses)
	}

	var sum decimal.NullDecimal
	if err := query.Select("SUM(total)").Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// GenerateNumber draws an unused 6-digit order number. Uniqueness is
// checked against existing rows and the draw retried on collision.
func (r *GormOrderRepository) GenerateNumber(ctx context.Context) (int, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number := 100000 + rand.Intn(900000)

		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.OrderModel{}).
			Where("number = ?", number).
			Count(&count).Error; err != nil {
			return 0, err
		}
		if count == 0 {
			return number, nil
		}
	}
	return 0, shared.NewDomainError("NUMBER_EXHAUSTED", "Could not generate a unique order number")
}
