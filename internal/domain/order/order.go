package order

import (
	"fmt"
	"time"

	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Customer holds the checkout contact and shipping details embedded in an
// order. It is captured once at creation and never changes afterwards.
type Customer struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	Zip     string
}

// Validate checks that all customer fields are present
func (c Customer) Validate() error {
	switch {
	case c.Name == "":
		return shared.NewDomainError("VALIDATION", "Customer name is required")
	case c.Email == "":
		return shared.NewDomainError("VALIDATION", "Customer email is required")
	case c.Phone == "":
		return shared.NewDomainError("VALIDATION", "Customer phone is required")
	case c.Address == "":
		return shared.NewDomainError("VALIDATION", "Customer address is required")
	case c.City == "":
		return shared.NewDomainError("VALIDATION", "Customer city is required")
	case c.Zip == "":
		return shared.NewDomainError("VALIDATION", "Customer zip is required")
	}
	return nil
}

// Item represents a line item in an order
type Item struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// NewItem creates a new order line item
func NewItem(name string, price decimal.Decimal, quantity int) (Item, error) {
	if name == "" {
		return Item{}, shared.NewDomainError("VALIDATION", "Item name is required")
	}
	if quantity <= 0 {
		return Item{}, shared.NewDomainError("VALIDATION", "Item quantity must be positive")
	}
	if price.IsNegative() {
		return Item{}, shared.NewDomainError("VALIDATION", "Item price cannot be negative")
	}
	return Item{Name: name, Price: price, Quantity: quantity}, nil
}

// Amount returns price * quantity for the line
func (i Item) Amount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents a customer's checkout submission awaiting or having
// received administrative approval and fulfillment.
//
// Number is the customer-facing numeric identifier (6 digits in the
// storefront); uniqueness is enforced by the store. Items and Total are
// fixed at creation; the total is computed server-side and never trusts
// a client-supplied value. Status changes only through Transition.
type Order struct {
	shared.BaseEntity
	Number      int
	Customer    Customer
	Items       []Item
	Total       decimal.Decimal
	Status      Status
	ApprovedAt  *time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
	RejectedAt  *time.Time
	CancelledAt *time.Time
}

// New creates a new order with status Pending Approval.
// The total is computed as the sum of item amounts.
func New(number int, customer Customer, items []Item) (*Order, error) {
	if number <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "Order number must be positive")
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("VALIDATION", "Order must contain at least one item")
	}

	total := decimal.Zero
	for _, item := range items {
		if item.Name == "" {
			return nil, shared.NewDomainError("VALIDATION", "Item name is required")
		}
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError("VALIDATION", "Item quantity must be positive")
		}
		if item.Price.IsNegative() {
			return nil, shared.NewDomainError("VALIDATION", "Item price cannot be negative")
		}
		total = total.Add(item.Amount())
	}

	return &Order{
		BaseEntity: shared.NewBaseEntity(),
		Number:     number,
		Customer:   customer,
		Items:      items,
		Total:      total,
		Status:     StatusPendingApproval,
	}, nil
}

// Transition moves the order to target, validating the state machine.
// Illegal transitions (including same-status writes and unknown target
// values) fail with INVALID_TRANSITION.
func (o *Order) Transition(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Unknown order status %q", string(target)))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot change order status from %s to %s", o.Status, target))
	}

	now := time.Now()
	o.Status = target
	o.UpdatedAt = now

	switch target {
	case StatusApproved:
		o.ApprovedAt = &now
	case StatusShipped:
		o.ShippedAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	case StatusRejected:
		o.RejectedAt = &now
	case StatusCancelled:
		o.CancelledAt = &now
	}

	return nil
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the sum of all item quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// IsPending returns true if the order awaits administrative approval
func (o *Order) IsPending() bool {
	return o.Status == StatusPendingApproval
}

// IsTerminal returns true if the order is in a terminal status
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}
