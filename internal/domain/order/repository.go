package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNumberTaken reports that another order already holds the number this
// one was drawn with. Callers are expected to redraw and save again.
var ErrNumberTaken = errors.New("order number already taken")

// Repository defines the interface for order persistence
type Repository interface {
	// FindByID finds an order by its internal ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByNumber finds an order by its customer-facing number
	FindByNumber(ctx context.Context, number int) (*Order, error)

	// FindAll returns all orders sorted by creation time descending.
	// Rows with a missing timestamp sort last (treated as oldest).
	FindAll(ctx context.Context) ([]Order, error)

	// Save creates or updates an order. Returns ErrNumberTaken when a
	// concurrent writer claimed the same order number first.
	Save(ctx context.Context, o *Order) error

	// UpdateStatus conditionally writes the new status using the expected
	// current status as a guard (compare-and-swap). Returns
	// ErrConcurrencyConflict if the row was changed by another writer,
	// ErrNotFound if the order does not exist.
	UpdateStatus(ctx context.Context, o *Order, expected Status) error

	// Delete hard-deletes an order regardless of its status
	Delete(ctx context.Context, id uuid.UUID) error

	// CountAll counts all orders
	CountAll(ctx context.Context) (int64, error)

	// CountByStatus counts orders in the given status
	CountByStatus(ctx context.Context, status Status) (int64, error)

	// SumTotalExcluding sums order totals, skipping the given statuses
	SumTotalExcluding(ctx context.Context, excluded ...Status) (decimal.Decimal, error)

	// GenerateNumber generates an unused 6-digit order number
	GenerateNumber(ctx context.Context) (int, error)
}
