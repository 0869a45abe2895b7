package ai

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the assistant
type Handler struct {
	service *Service
}

// NewHandler creates a new AI handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Chat answers one assistant message
// POST /api/bot/chat
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.service.Chat(&req)
	if err != nil {
		if errors.Is(err, ErrBotDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// SuggestCategory proposes complaint titles for a description
// POST /api/ai/suggest-category
func (h *Handler) SuggestCategory(c *gin.Context) {
	var req SuggestCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response := SuggestCategory(req.Description)
	c.JSON(http.StatusOK, response)
}

// GetConfig returns the bot configuration
// GET /api/admin/bot/config
func (h *Handler) GetConfig(c *gin.Context) {
	response, err := h.service.GetConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateConfig patches the bot configuration
// PUT /api/admin/bot/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateBotConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.service.UpdateConfig(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Analytics returns the bot usage report
// GET /api/admin/bot/analytics
func (h *Handler) Analytics(c *gin.Context) {
	response, err := h.service.UsageAnalytics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Insights returns the admin operational report
// GET /api/admin/insights
func (h *Handler) Insights(c *gin.Context) {
	response, err := h.service.Insights()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}
