package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/dovoc/backend/internal/domain/order"
	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(t *testing.T, number int) *order.Order {
	t.Helper()

	customer := order.Customer{
		Name:    "Jordan Reyes",
		Email:   "jordan@example.com",
		Phone:   "555-0101",
		Address: "12 Harbor Lane",
		City:    "Portsmouth",
		Zip:     "03801",
	}
	items := []order.Item{
		{Name: "Candle", Price: decimal.NewFromFloat(15.00), Quantity: 2},
		{Name: "Soap", Price: decimal.NewFromFloat(24.50), Quantity: 1},
	}

	o, err := order.New(number, customer, items)
	require.NoError(t, err)
	return o
}

func TestGormOrderRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := testOrder(t, 123456)
	require.NoError(t, repo.Save(ctx, o))

	t.Run("finds by ID with items in order", func(t *testing.T) {
		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)

		assert.Equal(t, o.ID, found.ID)
		assert.Equal(t, 123456, found.Number)
		assert.Equal(t, "Jordan Reyes", found.Customer.Name)
		assert.Equal(t, order.StatusPendingApproval, found.Status)
		require.Len(t, found.Items, 2)
		assert.Equal(t, "Candle", found.Items[0].Name)
		assert.Equal(t, "Soap", found.Items[1].Name)
		assert.True(t, found.Total.Equal(decimal.NewFromFloat(54.50)))
	})

	t.Run("finds by number", func(t *testing.T) {
		found, err := repo.FindByNumber(ctx, 123456)
		require.NoError(t, err)
		assert.Equal(t, o.ID, found.ID)
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("returns not found for unknown number", func(t *testing.T) {
		_, err := repo.FindByNumber(ctx, 999999)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	oldest := testOrder(t, 100001)
	oldest.CreatedAt = time.Now().Add(-2 * time.Hour)
	middle := testOrder(t, 100002)
	middle.CreatedAt = time.Now().Add(-1 * time.Hour)
	newest := testOrder(t, 100003)

	for _, o := range []*order.Order{oldest, middle, newest} {
		require.NoError(t, repo.Save(ctx, o))
	}

	orders, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)

	assert.Equal(t, 100003, orders[0].Number)
	assert.Equal(t, 100002, orders[1].Number)
	assert.Equal(t, 100001, orders[2].Number)
}

func TestGormOrderRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("writes new status when expectation holds", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormOrderRepository(db)

		o := testOrder(t, 200001)
		require.NoError(t, repo.Save(ctx, o))

		require.NoError(t, o.Transition(order.StatusApproved))
		require.NoError(t, repo.UpdateStatus(ctx, o, order.StatusPendingApproval))

		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusApproved, found.Status)
		assert.NotNil(t, found.ApprovedAt)
	})

	t.Run("reports conflict when another writer moved first", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormOrderRepository(db)

		o := testOrder(t, 200002)
		require.NoError(t, repo.Save(ctx, o))

		// A competing request already rejected the order
		rejected, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		require.NoError(t, rejected.Transition(order.StatusRejected))
		require.NoError(t, repo.UpdateStatus(ctx, rejected, order.StatusPendingApproval))

		require.NoError(t, o.Transition(order.StatusApproved))
		err = repo.UpdateStatus(ctx, o, order.StatusPendingApproval)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusRejected, found.Status)
	})

	t.Run("reports not found for a deleted order", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormOrderRepository(db)

		o := testOrder(t, 200003)
		require.NoError(t, o.Transition(order.StatusApproved))

		err := repo.UpdateStatus(ctx, o, order.StatusPendingApproval)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := testOrder(t, 300001)
	require.NoError(t, repo.Save(ctx, o))

	t.Run("removes order and its items", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, o.ID))

		_, err := repo.FindByID(ctx, o.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		var itemCount int64
		require.NoError(t, db.Table("order_items").Where("order_id = ?", o.ID).Count(&itemCount).Error)
		assert.Zero(t, itemCount)
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_Counts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	pending := testOrder(t, 400001)
	require.NoError(t, repo.Save(ctx, pending))

	approved := testOrder(t, 400002)
	require.NoError(t, approved.Transition(order.StatusApproved))
	require.NoError(t, repo.Save(ctx, approved))

	rejected := testOrder(t, 400003)
	require.NoError(t, rejected.Transition(order.StatusRejected))
	require.NoError(t, repo.Save(ctx, rejected))

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	pendingCount, err := repo.CountByStatus(ctx, order.StatusPendingApproval)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pendingCount)

	shippedCount, err := repo.CountByStatus(ctx, order.StatusShipped)
	require.NoError(t, err)
	assert.Zero(t, shippedCount)
}

func TestGormOrderRepository_SumTotalExcluding(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	t.Run("empty table sums to zero", func(t *testing.T) {
		sum, err := repo.SumTotalExcluding(ctx, order.StatusRejected, order.StatusCancelled)
		require.NoError(t, err)
		assert.True(t, sum.IsZero())
	})

	t.Run("excluded statuses do not count", func(t *testing.T) {
		pending := testOrder(t, 500001)
		require.NoError(t, repo.Save(ctx, pending))

		approved := testOrder(t, 500002)
		require.NoError(t, approved.Transition(order.StatusApproved))
		require.NoError(t, repo.Save(ctx, approved))

		rejected := testOrder(t, 500003)
		require.NoError(t, rejected.Transition(order.StatusRejected))
		require.NoError(t, repo.Save(ctx, rejected))

		// Cancelled has no inbound transition; it only exists as stored data
		cancelled := testOrder(t, 500004)
		cancelled.Status = order.StatusCancelled
		require.NoError(t, repo.Save(ctx, cancelled))

		sum, err := repo.SumTotalExcluding(ctx, order.StatusRejected, order.StatusCancelled)
		require.NoError(t, err)
		assert.True(t, sum.Equal(decimal.NewFromFloat(109.00)), "got %s", sum)
	})
}

func TestGormOrderRepository_Save_NumberTaken(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	winner := testOrder(t, 600001)
	require.NoError(t, repo.Save(ctx, winner))

	// A second checkout drew the same number before the first committed
	loser := testOrder(t, 600001)
	err := repo.Save(ctx, loser)
	assert.ErrorIs(t, err, order.ErrNumberTaken)

	t.Run("updating the winner stays allowed", func(t *testing.T) {
		require.NoError(t, winner.Transition(order.StatusApproved))
		require.NoError(t, repo.Save(ctx, winner))
	})
}

func TestGormOrderRepository_GenerateNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	seen := make(map[int]bool)
	for i := 0; i < 10; i++ {
		number, err := repo.GenerateNumber(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, number, 100000)
		assert.LessOrEqual(t, number, 999999)
		seen[number] = true
	}
	assert.NotEmpty(t, seen)
}
