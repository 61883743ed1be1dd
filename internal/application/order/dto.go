package order

import (
	"time"

	"github.com/dovoc/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerInput carries the checkout contact and shipping fields
type CustomerInput struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required,min=1,max=50"`
	Address string `json:"address" binding:"required,min=1,max=500"`
	City    string `json:"city" binding:"required,min=1,max=100"`
	Zip     string `json:"zip" binding:"required,min=1,max=20"`
}

// ItemInput carries one checkout line item
type ItemInput struct {
	Name     string          `json:"name" binding:"required,min=1,max=200"`
	Price    decimal.Decimal `json:"price" binding:"gte=0"`
	Quantity int             `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest represents a checkout submission.
// Total is accepted for wire-shape compatibility with the storefront
// client but never persisted; the order total is always recomputed
// server-side from the items.
type CreateOrderRequest struct {
	Customer       CustomerInput    `json:"customer" binding:"required"`
	Items          []ItemInput      `json:"items" binding:"required,min=1,dive"`
	Total          *decimal.Decimal `json:"total"`
	IdempotencyKey string           `json:"idempotency_key"`
}

// UpdateStatusRequest represents an admin status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CustomerResponse mirrors the stored customer snapshot
type CustomerResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

// ItemResponse mirrors one stored line item
type ItemResponse struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID          uuid.UUID        `json:"id"`
	Number      int              `json:"number"`
	Customer    CustomerResponse `json:"customer"`
	Items       []ItemResponse   `json:"items"`
	Total       decimal.Decimal  `json:"total"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	ApprovedAt  *time.Time       `json:"approved_at,omitempty"`
	ShippedAt   *time.Time       `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time       `json:"delivered_at,omitempty"`
	RejectedAt  *time.Time       `json:"rejected_at,omitempty"`
	CancelledAt *time.Time       `json:"cancelled_at,omitempty"`
}

// SummaryResponse carries the admin dashboard analytics
type SummaryResponse struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalOrders    int64           `json:"total_orders"`
	PendingActions int64           `json:"pending_actions"`
}

// ToOrderResponse converts a domain order to its API representation
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = ItemResponse{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Amount:   item.Amount(),
		}
	}

	return OrderResponse{
		ID:     o.ID,
		Number: o.Number,
		Customer: CustomerResponse{
			Name:    o.Customer.Name,
			Email:   o.Customer.Email,
			Phone:   o.Customer.Phone,
			Address: o.Customer.Address,
			City:    o.Customer.City,
			Zip:     o.Customer.Zip,
		},
		Items:       items,
		Total:       o.Total,
		Status:      o.Status.String(),
		CreatedAt:   o.CreatedAt,
		ApprovedAt:  o.ApprovedAt,
		ShippedAt:   o.ShippedAt,
		DeliveredAt: o.DeliveredAt,
		RejectedAt:  o.RejectedAt,
		CancelledAt: o.CancelledAt,
	}
}
