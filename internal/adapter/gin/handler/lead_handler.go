package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "lead-crm-service/internal/domain/lead"
	"lead-crm-service/internal/adapter/gin/middleware"
	"lead-crm-service/internal/usecase/lead"
)

// LeadHandler handles HTTP requests for lead operations.
// All routes sit behind the auth middleware; the owner ID is always taken
// from the authenticated identity, never from the request.
type LeadHandler struct {
	uc  lead.Usecase
	log *zap.Logger
}

// NewLeadHandler creates a new LeadHandler instance
func NewLeadHandler(uc lead.Usecase, log *zap.Logger) *LeadHandler {
	return &LeadHandler{
		uc:  uc,
		log: log,
	}
}

// CreateLeadRequest represents the HTTP request body for creating a lead
type CreateLeadRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
}

// UpdateLeadRequest represents a partial update. Pointer fields distinguish
// an absent field from an empty one.
type UpdateLeadRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Status *string `json:"status"`
}

// LeadResponse represents the HTTP response for lead data
type LeadResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func toLeadResponse(l *domain.Lead) LeadResponse {
	return LeadResponse{
		ID:        l.ID,
		Name:      l.Name,
		Email:     l.Email,
		Phone:     l.Phone,
		Status:    l.Status,
		UserID:    l.UserID,
		CreatedAt: l.CreatedAt,
	}
}

// identity extracts the authenticated user set by the auth middleware.
func (h *LeadHandler) identity(c *gin.Context) (string, bool) {
	usr, ok := middleware.Identity(c)
	if !ok {
		h.log.Error("identity missing from authenticated request",
			zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return "", false
	}
	return usr.ID, true
}

// List handles GET /api/leads
func (h *LeadHandler) List(c *gin.Context) {
	ownerID, ok := h.identity(c)
	if !ok {
		return
	}

	leads, err := h.uc.List(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]LeadResponse, len(leads))
	for i := range leads {
		resp[i] = toLeadResponse(&leads[i])
	}

	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/leads/:id
func (h *LeadHandler) Get(c *gin.Context) {
	ownerID, ok := h.identity(c)
	if !ok {
		return
	}

	l, err := h.uc.Get(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toLeadResponse(l))
}

// Create handles POST /api/leads
func (h *LeadHandler) Create(c *gin.Context) {
	ownerID, ok := h.identity(c)
	if !ok {
		return
	}

	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create lead request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	l, err := h.uc.Create(c.Request.Context(), ownerID, lead.CreateLeadRequest{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Lead created successfully",
		"lead":    toLeadResponse(l),
	})
}

// Update handles PUT /api/leads/:id
func (h *LeadHandler) Update(c *gin.Context) {
	ownerID, ok := h.identity(c)
	if !ok {
		return
	}

	var req UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid update lead request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	l, err := h.uc.Update(c.Request.Context(), ownerID, c.Param("id"), lead.UpdateLeadRequest{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Status: req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lead updated successfully",
		"lead":    toLeadResponse(l),
	})
}

// Delete handles DELETE /api/leads/:id
func (h *LeadHandler) Delete(c *gin.Context) {
	ownerID, ok := h.identity(c)
	if !ok {
		return
	}

	if err := h.uc.Delete(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lead deleted successfully"})
}
