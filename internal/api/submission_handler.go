package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/techpolicywire/content-api/internal/models"
	"github.com/techpolicywire/content-api/internal/service"
)

// SubmissionHandler handles the public intake and the moderation queue
type SubmissionHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSubmissionHandler creates a new SubmissionHandler
func NewSubmissionHandler(services *service.Services, log zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		services: services,
		log:      log.With().Str("handler", "submission").Logger(),
	}
}

// Create handles POST /api/submissions (public intake)
func (h *SubmissionHandler) Create(c *gin.Context) {
	var req models.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	receipt, err := h.services.Submission.Submit(c.Request.Context(), c.ClientIP(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

// List handles GET /api/submissions (moderation queue, pending only)
func (h *SubmissionHandler) List(c *gin.Context) {
	pending, err := h.services.Submission.Pending(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": pending, "total": len(pending)})
}

// Approve handles POST /api/submissions/:id/approve
func (h *SubmissionHandler) Approve(c *gin.Context) {
	sub, err := h.services.Submission.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "submission": sub})
}

// Dismiss handles POST /api/submissions/:id/dismiss
func (h *SubmissionHandler) Dismiss(c *gin.Context) {
	sub, err := h.services.Submission.Dismiss(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "submission": sub})
}
