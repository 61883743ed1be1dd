package handler

import (
	"strings"

	catalogapp "github.com/dovoc/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// UploadHandler stores product images and returns their public URL
type UploadHandler struct {
	BaseHandler
	storage catalogapp.ImageStorage
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(storage catalogapp.ImageStorage) *UploadHandler {
	return &UploadHandler{storage: storage}
}

// Upload handles POST /upload (admin). Expects a multipart form with a
// single "image" part. The route carries a body-size limit so oversized
// files are rejected before they reach the store.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "Missing image file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		h.BadRequest(c, "Only image uploads are allowed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	url, err := h.storage.Upload(c.Request.Context(), fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"url": url})
}
