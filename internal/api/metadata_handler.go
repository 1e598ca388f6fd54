package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/techpolicywire/content-api/internal/service"
)

// MetadataHandler handles the clipper metadata endpoint
type MetadataHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewMetadataHandler creates a new MetadataHandler
func NewMetadataHandler(services *service.Services, log zerolog.Logger) *MetadataHandler {
	return &MetadataHandler{
		services: services,
		log:      log.With().Str("handler", "metadata").Logger(),
	}
}

// Fetch handles GET /api/metadata?url=...
func (h *MetadataHandler) Fetch(c *gin.Context) {
	pageURL := c.Query("url")
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL parameter required"})
		return
	}

	meta, err := h.services.Metadata.Fetch(c.Request.Context(), pageURL)
	if err != nil {
		h.log.Warn().Err(err).Str("url", pageURL).Msg("Metadata fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch metadata"})
		return
	}
	c.JSON(http.StatusOK, meta)
}
