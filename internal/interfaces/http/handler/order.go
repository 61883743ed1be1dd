package handler

import (
	orderapp "github.com/dovoc/backend/internal/application/order"
	"github.com/dovoc/backend/internal/domain/order"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles checkout and admin order endpoints
type OrderHandler struct {
	BaseHandler
	orders *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *orderapp.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// CreateOrderReply is the storefront's checkout confirmation
type CreateOrderReply struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber int       `json:"order_number"`
}

// Create handles POST /orders (public checkout)
func (h *OrderHandler) Create(c *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orders.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, CreateOrderReply{
		OrderID:     resp.ID,
		OrderNumber: resp.Number,
	})
}

// List handles GET /orders (admin)
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// GetByID handles GET /orders/:id (admin)
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	resp, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus handles PATCH /orders/:id/status (admin). The status
// value is a closed enum; unknown values are rejected here with 400,
// while transitions the state machine forbids come back as 409.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	target := order.Status(req.Status)
	if !target.IsValid() {
		h.BadRequest(c, "Unknown order status: "+req.Status)
		return
	}

	resp, err := h.orders.SetStatus(c.Request.Context(), id, target, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /orders/:id (admin)
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id, actor(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": true})
}

// Summary handles GET /dashboard/summary (admin)
func (h *OrderHandler) Summary(c *gin.Context) {
	summary, err := h.orders.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
