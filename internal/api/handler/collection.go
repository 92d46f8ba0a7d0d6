package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/artfolio/internal/repository"
	"github.com/timmy/artfolio/internal/service"
	"github.com/timmy/artfolio/internal/source"
)

// CollectionHandler handles the saved and disliked collections.
type CollectionHandler struct {
	collectionService *service.CollectionService
}

// NewCollectionHandler creates a new collection handler.
func NewCollectionHandler(collectionService *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// ListSaved handles GET /api/v1/saved.
func (h *CollectionHandler) ListSaved(c *gin.Context) {
	saved, err := h.collectionService.ListSaved(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list saved artworks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"artworks": saved,
		"total":    len(saved),
	})
}

// GetSavedStatus handles GET /api/v1/saved/:id.
func (h *CollectionHandler) GetSavedStatus(c *gin.Context) {
	id, ok := parseArtworkID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artwork ID"})
		return
	}

	saved, err := h.collectionService.IsSaved(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check saved status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "saved": saved})
}

// Save handles POST /api/v1/saved/:id.
func (h *CollectionHandler) Save(c *gin.Context) {
	id, ok := parseArtworkID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artwork ID"})
		return
	}

	saved, created, err := h.collectionService.Save(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to save artwork")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, saved)
}

// Unsave handles DELETE /api/v1/saved/:id.
func (h *CollectionHandler) Unsave(c *gin.Context) {
	id, ok := parseArtworkID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artwork ID"})
		return
	}

	if err := h.collectionService.Unsave(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Failed to remove saved artwork")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListDisliked handles GET /api/v1/disliked.
func (h *CollectionHandler) ListDisliked(c *gin.Context) {
	disliked, err := h.collectionService.ListDisliked(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list disliked artworks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"artworks": disliked,
		"total":    len(disliked),
	})
}

// Dislike handles POST /api/v1/disliked/:id.
func (h *CollectionHandler) Dislike(c *gin.Context) {
	id, ok := parseArtworkID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artwork ID"})
		return
	}

	disliked, created, err := h.collectionService.Dislike(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to dislike artwork")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, disliked)
}

// Undislike handles DELETE /api/v1/disliked/:id.
func (h *CollectionHandler) Undislike(c *gin.Context) {
	id, ok := parseArtworkID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid artwork ID"})
		return
	}

	if err := h.collectionService.Undislike(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Failed to remove disliked artwork")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CollectionHandler) writeError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, source.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork is not in the collection"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message + ": " + err.Error()})
	}
}
