package handler

import (
	"github.com/dovoc/backend/internal/domain/notification"
	"github.com/gin-gonic/gin"
)

// ContactHandler forwards contact-form submissions to the shop admin
type ContactHandler struct {
	BaseHandler
	dispatcher notification.Dispatcher
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(dispatcher notification.Dispatcher) *ContactHandler {
	return &ContactHandler{dispatcher: dispatcher}
}

// ContactRequest represents a contact-form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,max=10000"`
}

// Submit handles POST /contact. Unlike order notifications this send is
// synchronous: the sender expects a reply, so a delivery failure is
// surfaced to them instead of being swallowed.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid contact request: "+err.Error())
		return
	}

	if err := h.dispatcher.SendContactMessage(c.Request.Context(), req.Name, req.Email, req.Message); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"sent": true})
}
