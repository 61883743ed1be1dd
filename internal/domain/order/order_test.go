package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func testCustomer() Customer {
	return Customer{
		Name:    "Asha Verma",
		Email:   "asha@example.com",
		Phone:   "9876543210",
		Address: "12 Lake Road",
		City:    "Pune",
		Zip:     "411001",
	}
}

func testItems() []Item {
	return []Item{
		{Name: "Bamboo Toothbrush", Price: decimal.NewFromFloat(15.00), Quantity: 2},
		{Name: "Jute Tote Bag", Price: decimal.NewFromFloat(24.50), Quantity: 1},
	}
}

func createTestOrder(t *testing.T) *Order {
	o, err := New(123456, testCustomer(), testItems())
	require.NoError(t, err)
	return o
}

// ============================================
// Status Tests
// ============================================

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  Status
		isValid bool
	}{
		{StatusPendingApproval, true},
		{StatusApproved, true},
		{StatusRejected, true},
		{StatusCancelled, true},
		{StatusShipped, true},
		{StatusDelivered, true},
		{Status("Processing"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	all := []Status{
		StatusPendingApproval, StatusApproved, StatusRejected,
		StatusCancelled, StatusShipped, StatusDelivered,
	}

	legal := map[Status][]Status{
		StatusPendingApproval: {StatusApproved, StatusRejected},
		StatusApproved:        {StatusShipped},
		StatusShipped:         {StatusDelivered},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, allowed := range legal[from] {
				if allowed == to {
					want = true
				}
			}
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				assert.Equal(t, want, from.CanTransitionTo(to))
			})
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusDelivered.IsTerminal())
	assert.False(t, StatusPendingApproval.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
}

func TestStatus_CountsTowardRevenue(t *testing.T) {
	assert.True(t, StatusPendingApproval.CountsTowardRevenue())
	assert.True(t, StatusApproved.CountsTowardRevenue())
	assert.True(t, StatusShipped.CountsTowardRevenue())
	assert.True(t, StatusDelivered.CountsTowardRevenue())
	assert.False(t, StatusRejected.CountsTowardRevenue())
	assert.False(t, StatusCancelled.CountsTowardRevenue())
}

// ============================================
// Order Tests
// ============================================

func TestNew(t *testing.T) {
	t.Run("computes total from items", func(t *testing.T) {
		o := createTestOrder(t)

		// 15.00 * 2 + 24.50 * 1
		assert.True(t, decimal.NewFromFloat(54.50).Equal(o.Total))
		assert.Equal(t, StatusPendingApproval, o.Status)
		assert.Equal(t, 123456, o.Number)
		assert.Equal(t, 2, o.ItemCount())
		assert.Equal(t, 3, o.TotalQuantity())
		assert.False(t, o.CreatedAt.IsZero())
	})

	t.Run("fail with empty items", func(t *testing.T) {
		_, err := New(123456, testCustomer(), nil)
		assert.Error(t, err)
	})

	t.Run("fail with zero quantity", func(t *testing.T) {
		items := []Item{{Name: "Soap Bar", Price: decimal.NewFromInt(5), Quantity: 0}}
		_, err := New(123456, testCustomer(), items)
		assert.Error(t, err)
	})

	t.Run("fail with negative price", func(t *testing.T) {
		items := []Item{{Name: "Soap Bar", Price: decimal.NewFromInt(-1), Quantity: 1}}
		_, err := New(123456, testCustomer(), items)
		assert.Error(t, err)
	})

	t.Run("fail with missing customer field", func(t *testing.T) {
		customer := testCustomer()
		customer.Email = ""
		_, err := New(123456, customer, testItems())
		assert.Error(t, err)
	})

	t.Run("zero price item is allowed", func(t *testing.T) {
		items := []Item{{Name: "Free Sample", Price: decimal.Zero, Quantity: 1}}
		o, err := New(654321, testCustomer(), items)
		require.NoError(t, err)
		assert.True(t, o.Total.IsZero())
	})
}

func TestNewItem(t *testing.T) {
	t.Run("valid item", func(t *testing.T) {
		item, err := NewItem("Bamboo Toothbrush", decimal.NewFromFloat(15.00), 2)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(30.00).Equal(item.Amount()))
	})

	t.Run("empty name fails", func(t *testing.T) {
		_, err := NewItem("", decimal.NewFromInt(1), 1)
		assert.Error(t, err)
	})
}

func TestOrder_Transition(t *testing.T) {
	t.Run("approve pending order", func(t *testing.T) {
		o := createTestOrder(t)

		err := o.Transition(StatusApproved)

		require.NoError(t, err)
		assert.Equal(t, StatusApproved, o.Status)
		assert.NotNil(t, o.ApprovedAt)
	})

	t.Run("reject pending order", func(t *testing.T) {
		o := createTestOrder(t)

		err := o.Transition(StatusRejected)

		require.NoError(t, err)
		assert.Equal(t, StatusRejected, o.Status)
		assert.NotNil(t, o.RejectedAt)
		assert.True(t, o.IsTerminal())
	})

	t.Run("full fulfilment path", func(t *testing.T) {
		o := createTestOrder(t)

		require.NoError(t, o.Transition(StatusApproved))
		require.NoError(t, o.Transition(StatusShipped))
		require.NoError(t, o.Transition(StatusDelivered))

		assert.Equal(t, StatusDelivered, o.Status)
		assert.NotNil(t, o.ShippedAt)
		assert.NotNil(t, o.DeliveredAt)
	})

	t.Run("skipping approval fails", func(t *testing.T) {
		o := createTestOrder(t)

		err := o.Transition(StatusShipped)

		assert.Error(t, err)
		assert.Equal(t, StatusPendingApproval, o.Status)
	})

	t.Run("backwards transition fails", func(t *testing.T) {
		o := createTestOrder(t)
		require.NoError(t, o.Transition(StatusApproved))
		require.NoError(t, o.Transition(StatusShipped))

		err := o.Transition(StatusApproved)

		assert.Error(t, err)
		assert.Equal(t, StatusShipped, o.Status)
	})

	t.Run("same-status write fails", func(t *testing.T) {
		o := createTestOrder(t)
		require.NoError(t, o.Transition(StatusApproved))

		err := o.Transition(StatusApproved)

		assert.Error(t, err)
	})

	t.Run("out of terminal state fails", func(t *testing.T) {
		o := createTestOrder(t)
		require.NoError(t, o.Transition(StatusRejected))

		err := o.Transition(StatusApproved)

		assert.Error(t, err)
	})

	t.Run("unknown status value fails", func(t *testing.T) {
		o := createTestOrder(t)

		err := o.Transition(Status("Archived"))

		assert.Error(t, err)
	})

	t.Run("transitions never alter items or total", func(t *testing.T) {
		o := createTestOrder(t)
		total := o.Total

		require.NoError(t, o.Transition(StatusApproved))
		require.NoError(t, o.Transition(StatusShipped))

		assert.True(t, total.Equal(o.Total))
		assert.Len(t, o.Items, 2)
	})
}
