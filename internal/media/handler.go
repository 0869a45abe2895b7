package media

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for attachments
type Handler struct {
	service *Service
}

// NewHandler creates a new media handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload stores one attachment and returns its URL
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer src.Close()

	url, err := h.service.Upload(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
