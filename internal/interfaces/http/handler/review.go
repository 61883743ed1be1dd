package handler

import (
	reviewapp "github.com/dovoc/backend/internal/application/review"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReviewHandler handles storefront and admin review endpoints
type ReviewHandler struct {
	BaseHandler
	reviews *reviewapp.Service
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviews *reviewapp.Service) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Create handles POST /reviews (public)
func (h *ReviewHandler) Create(c *gin.Context) {
	var req reviewapp.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reviews.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListByProduct handles GET /reviews/product/:id (public)
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	reviews, err := h.reviews.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reviews)
}

// ListFeatured handles GET /reviews/featured (public)
func (h *ReviewHandler) ListFeatured(c *gin.Context) {
	reviews, err := h.reviews.ListFeatured(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reviews)
}

// List handles GET /reviews (admin)
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.reviews.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reviews)
}

// ToggleFeatured handles PATCH /reviews/:id/featured (admin)
func (h *ReviewHandler) ToggleFeatured(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	resp, err := h.reviews.ToggleFeatured(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /reviews/:id (admin)
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": true})
}
