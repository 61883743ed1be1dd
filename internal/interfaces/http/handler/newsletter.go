package handler

import (
	newsletterapp "github.com/dovoc/backend/internal/application/newsletter"
	"github.com/gin-gonic/gin"
)

// NewsletterHandler handles newsletter signup and broadcast endpoints
type NewsletterHandler struct {
	BaseHandler
	newsletter *newsletterapp.Service
}

// NewNewsletterHandler creates a new NewsletterHandler
func NewNewsletterHandler(newsletter *newsletterapp.Service) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter}
}

// Subscribe handles POST /newsletter/subscribe (public)
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req newsletterapp.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.newsletter.Subscribe(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List handles GET /newsletter/subscribers (admin)
func (h *NewsletterHandler) List(c *gin.Context) {
	subscribers, err := h.newsletter.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, subscribers)
}

// Broadcast handles POST /newsletter/broadcast (admin). The response
// tallies per-recipient outcomes; a partial failure is still a 200.
func (h *NewsletterHandler) Broadcast(c *gin.Context) {
	var req newsletterapp.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.newsletter.Broadcast(c.Request.Context(), req, actor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Unsubscribe handles DELETE /newsletter/subscribers/:id (admin)
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid subscriber ID format")
		return
	}

	if err := h.newsletter.Unsubscribe(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": true})
}
