package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/techpolicywire/content-api/internal/models"
	"github.com/techpolicywire/content-api/internal/service"
)

// SearchHandler handles the cross-section search endpoint
type SearchHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(services *service.Services, log zerolog.Logger) *SearchHandler {
	return &SearchHandler{
		services: services,
		log:      log.With().Str("handler", "search").Logger(),
	}
}

// Search handles GET /api/search
func (h *SearchHandler) Search(c *gin.Context) {
	sections, err := parseSections(c.Query("sections"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid section"})
		return
	}

	opts := models.SearchOptions{
		Limit:    intQuery(c, "limit", 0),
		Sections: sections,
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
		Sort:     c.DefaultQuery("sort", models.SortDate),
		Order:    c.DefaultQuery("order", models.OrderDesc),
	}

	result, err := h.services.Search.Search(c.Request.Context(), c.Query("q"), opts)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseSections(raw string) ([]models.Section, error) {
	if raw == "" {
		return nil, nil
	}
	var sections []models.Section
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		section, err := models.ParseSection(part)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, nil
}
