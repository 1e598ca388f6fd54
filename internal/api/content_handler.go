package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/techpolicywire/content-api/internal/models"
	"github.com/techpolicywire/content-api/internal/repository"
	"github.com/techpolicywire/content-api/internal/service"
)

const (
	defaultHomeLimit    = 10
	defaultSectionLimit = 50
)

// ContentHandler handles content endpoints
type ContentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(services *service.Services, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		services: services,
		log:      log.With().Str("handler", "content").Logger(),
	}
}

// GetAll handles GET /api/content — the homepage aggregate across all
// sections, keyed by section name.
func (h *ContentHandler) GetAll(c *gin.Context) {
	search := c.Query("search")
	limit := intQuery(c, "limit", defaultHomeLimit)

	data, err := h.services.Content.ListAll(c.Request.Context(), search, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetSection handles GET /api/content/:section
func (h *ContentHandler) GetSection(c *gin.Context) {
	opts := repository.ListOptions{
		Limit:  intQuery(c, "limit", defaultSectionLimit),
		Offset: intQuery(c, "offset", 0),
		Search: c.Query("search"),
	}

	items, total, err := h.services.Content.ListSection(c.Request.Context(), c.Param("section"), opts)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if boolQuery(c, "includeTotal") {
		c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Create handles POST /api/content/:section
func (h *ContentHandler) Create(c *gin.Context) {
	var req models.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	item, err := h.services.Content.Add(c.Request.Context(), c.Param("section"), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update handles PUT /api/content/:section/:id
func (h *ContentHandler) Update(c *gin.Context) {
	var req models.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	item, err := h.services.Content.Update(c.Request.Context(), c.Param("section"), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /api/content/:section/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	err := h.services.Content.Delete(c.Request.Context(), c.Param("section"), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func intQuery(c *gin.Context, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

func boolQuery(c *gin.Context, key string) bool {
	value, _ := strconv.ParseBool(c.Query(key))
	return value
}
