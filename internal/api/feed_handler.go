package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/techpolicywire/content-api/internal/service"
)

// FeedHandler handles the RSS endpoints
type FeedHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(services *service.Services, log zerolog.Logger) *FeedHandler {
	return &FeedHandler{
		services: services,
		log:      log.With().Str("handler", "feed").Logger(),
	}
}

// Feed handles GET /api/rss and GET /api/rss/:section
func (h *FeedHandler) Feed(c *gin.Context) {
	xmlBytes, err := h.services.Feed.Render(c.Request.Context(), c.Param("section"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", xmlBytes)
}
