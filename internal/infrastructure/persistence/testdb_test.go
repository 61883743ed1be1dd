package persistence

import (
	"testing"

	"github.com/dovoc/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.ProductModel{},
		&models.CategoryModel{},
		&models.ReviewModel{},
		&models.UserModel{},
		&models.SubscriberModel{},
		&models.AuditEntryModel{},
	)
	require.NoError(t, err)

	return db
}
