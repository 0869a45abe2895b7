package complaint

import (
	"errors"
	"net/http"

	"citycare/internal/auth"
	"citycare/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for complaints
type Handler struct {
	service     *Service
	authService *auth.Service
}

// NewHandler creates a new complaint handler
func NewHandler(service *Service, authService *auth.Service) *Handler {
	return &Handler{service: service, authService: authService}
}

// Submit files a complaint for the authenticated citizen
// POST /api/complaints
func (h *Handler) Submit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reporter, err := h.authService.GetUserByEmail(c.GetString("user_email"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown reporter"})
		return
	}
	if reporter.ID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Token identity mismatch"})
		return
	}

	response, err := h.service.Create(reporter, &req, reporter.FullName())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// SubmitOnBehalf files a complaint for a citizen identified by email
// POST /api/admin/complaint
func (h *Handler) SubmitOnBehalf(c *gin.Context) {
	var req AdminCreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reporter, err := h.authService.GetUserByEmail(req.UserEmail)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response, err := h.service.Create(reporter, &req.CreateComplaintRequest, actorLabel(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListMine returns the authenticated citizen's complaints
// GET /api/complaints
func (h *Handler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req ListComplaintsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	response, err := h.service.List(&req, &userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetMine returns one of the authenticated citizen's complaints
// GET /api/complaints/:id
func (h *Handler) GetMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	response, err := h.service.Get(c.Param("id"), &userID)
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

// ListAll returns complaints across all citizens
// GET /api/admin/complaints
func (h *Handler) ListAll(c *gin.Context) {
	var req ListComplaintsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	response, err := h.service.List(&req, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateStatus applies an explicit status transition
// PUT /api/admin/complaints/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.service.Transition(c.Param("id"), req.Status, req.Note, actorLabel(c))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		case errors.Is(err, common.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListServices returns the municipal services catalog
// GET /api/services
func (h *Handler) ListServices(c *gin.Context) {
	response, err := h.service.ListServices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// getUserID extracts the authenticated user id set by the auth middleware
func getUserID(c *gin.Context) (uuid.UUID, error) {
	if userID, exists := c.Get("user_id"); exists {
		switch v := userID.(type) {
		case string:
			return uuid.Parse(v)
		case uuid.UUID:
			return v, nil
		}
	}
	return uuid.Nil, errors.New("user ID required - must be set by auth middleware")
}

// actorLabel is the name recorded into history for admin operations
func actorLabel(c *gin.Context) string {
	if name := c.GetString("user_name"); name != "" {
		return name
	}
	return "Admin API"
}
