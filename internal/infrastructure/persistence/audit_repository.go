package persistence

import (
	"context"

	"github.com/dovoc/backend/internal/domain/audit"
	"github.com/dovoc/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAuditRepository implements audit.Repository using GORM.
// Appending enforces the retention cap by pruning the oldest entries.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append persists a new audit entry and prunes entries beyond the
// retention cap, oldest first.
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	model := models.AuditEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.AuditEntryModel{}).Count(&count).Error; err != nil {
			return err
		}
		if count <= audit.RetentionCap {
			return nil
		}

		// Collect the IDs of the oldest surplus rows and drop them
		var staleIDs []string
		if err := tx.Model(&models.AuditEntryModel{}).
			Order("timestamp ASC").
			Limit(int(count - audit.RetentionCap)).
			Pluck("id", &staleIDs).Error; err != nil {
			return err
		}
		if len(staleIDs) == 0 {
			return nil
		}
		return tx.Where("id IN ?", staleIDs).
			Delete(&models.AuditEntryModel{}).Error
	})
}

// FindRecent returns the most recent entries, newest first
func (r *GormAuditRepository) FindRecent(ctx context.Context, limit int) ([]audit.Entry, error) {
	if limit <= 0 || limit > audit.RetentionCap {
		limit = audit.RetentionCap
	}

	var modelList []models.AuditEntryModel
	if err := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&modelList).Error; err != nil {
		return nil, err
	}

	entries := make([]audit.Entry, len(modelList))
	for i := range modelList {
		entries[i] = *modelList[i].ToDomain()
	}
	return entries, nil
}

// Count counts all retained audit entries
func (r *GormAuditRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AuditEntryModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
