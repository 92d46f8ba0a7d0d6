package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/artfolio/internal/domain"
	"github.com/timmy/artfolio/internal/service"
	"github.com/timmy/artfolio/internal/source"
)

// ArtworkHandler handles browsing the museum collection.
type ArtworkHandler struct {
	catalogService *service.CatalogService
}

// NewArtworkHandler creates a new artwork handler.
func NewArtworkHandler(catalogService *service.CatalogService) *ArtworkHandler {
	return &ArtworkHandler{catalogService: catalogService}
}

// ListArtworks handles GET /api/v1/artworks.
// Query params: page, limit, department, artwork_type, place_of_origin, medium.
func (h *ArtworkHandler) ListArtworks(c *gin.Context) {
	filters := domain.Filters{
		Department:    c.Query("department"),
		ArtworkType:   c.Query("artwork_type"),
		PlaceOfOrigin: c.Query("place_of_origin"),
		Medium:        c.Query("medium"),
	}

	page, err := h.catalogService.Browse(c.Request.Context(),
		queryInt(c, "page", 1),
		queryInt(c, "limit", service.DefaultBrowseLimit),
		filters,
	)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to list artworks: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, page)
}

// SearchArtworks handles GET /api/v1/artworks/search?q=.
func (h *ArtworkHandler) SearchArtworks(c *gin.Context) {
	page, err := h.catalogService.Search(c.Request.Context(),
		c.Query("q"),
		queryInt(c, "page", 1),
		queryInt(c, "limit", service.DefaultBrowseLimit),
	)
	if errors.Is(err, service.ErrEmptyQuery) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'q' is required",
		})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Search failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetArtwork handles GET /api/v1/artworks/:id.
func (h *ArtworkHandler) GetArtwork(c *gin.Context) {
	id, ok := parseArtworkID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artwork ID"})
		return
	}

	artwork, err := h.catalogService.GetArtwork(c.Request.Context(), id)
	if errors.Is(err, source.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to get artwork: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, artwork)
}
