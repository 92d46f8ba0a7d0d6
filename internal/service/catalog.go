package service

import (
	"context"
	"errors"
	"strings"

	"github.com/timmy/artfolio/internal/domain"
	"github.com/timmy/artfolio/internal/logger"
	"github.com/timmy/artfolio/internal/source"
)

const (
	DefaultBrowseLimit = 12
	MaxBrowseLimit     = 100
)

// ErrEmptyQuery is returned when a search is issued without a query.
var ErrEmptyQuery = errors.New("query is required")

// CatalogService handles browsing and searching the museum collection.
type CatalogService struct {
	catalog source.Catalog
	logger  *logger.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalog source.Catalog, log *logger.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, logger: log}
}

// Browse lists one page of artworks matching filters.
func (s *CatalogService) Browse(ctx context.Context, page, limit int, filters domain.Filters) (*source.Page, error) {
	page, limit = normalizePaging(page, limit)
	logger.CtxDebug(ctx, "Browsing artworks: page=%d, limit=%d, filters=%s", page, limit, filters)
	return s.catalog.FetchPage(ctx, page, limit, filters)
}

// Search runs a full-text query over the collection.
func (s *CatalogService) Search(ctx context.Context, query string, page, limit int) (*source.Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	page, limit = normalizePaging(page, limit)
	logger.CtxDebug(ctx, "Searching artworks: query=%q, page=%d, limit=%d", query, page, limit)
	return s.catalog.Search(ctx, query, page, limit)
}

// GetArtwork retrieves a single artwork by ID.
func (s *CatalogService) GetArtwork(ctx context.Context, id int) (*domain.Artwork, error) {
	return s.catalog.GetArtwork(ctx, id)
}

func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultBrowseLimit
	}
	if limit > MaxBrowseLimit {
		limit = MaxBrowseLimit
	}
	return page, limit
}
