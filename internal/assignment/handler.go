package assignment

import (
	"errors"
	"net/http"

	"citycare/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for resource assignments
type Handler struct {
	service *Service
}

// NewHandler creates a new assignment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Assign attaches a batch of resources to a complaint
// POST /api/admin/complaints/:id/resources
func (h *Handler) Assign(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.service.Assign(c.Param("id"), &req, actorLabel(c))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// AssignOne attaches a single resource; conflicts are hard failures here
// POST /api/admin/complaints/:id/resources/:resourceId
func (h *Handler) AssignOne(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Param("resourceId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource ID"})
		return
	}

	var req struct {
		Notes          string   `json:"notes"`
		EstimatedHours *float64 `json:"estimated_hours"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.service.AssignOne(c.Param("id"), resourceID, req.Notes, req.EstimatedHours, actorLabel(c))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, common.ErrAlreadyAssigned):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, common.ErrConstraintViolation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// Unassign removes a resource from a complaint
// DELETE /api/admin/complaints/:id/resources/:resourceId
func (h *Handler) Unassign(c *gin.Context) {
	resourceID, err := uuid.Parse(c.Param("resourceId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource ID"})
		return
	}

	if err := h.service.Unassign(c.Param("id"), resourceID, actorLabel(c)); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resource assignment removed"})
}

// List returns a complaint's assignments
// GET /api/admin/complaints/:id/resources
func (h *Handler) List(c *gin.Context) {
	response, err := h.service.List(c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// actorLabel is the name recorded into history for admin operations
func actorLabel(c *gin.Context) string {
	if name := c.GetString("user_name"); name != "" {
		return name
	}
	return "Admin API"
}
