package source

import (
	"context"
	"errors"

	"github.com/timmy/artfolio/internal/domain"
)

// ErrNotFound is returned when the source has no artwork with the requested ID.
var ErrNotFound = errors.New("artwork not found")

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Total       int `json:"total"`
	Limit       int `json:"limit"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

// HasMore reports whether pages follow the current one.
func (p Pagination) HasMore() bool {
	return p.CurrentPage < p.TotalPages
}

// Page is one page of artworks from a source.
type Page struct {
	Items      []domain.Artwork `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

// ArtworkSource defines paginated, filterable artwork lookup.
type ArtworkSource interface {
	// FetchPage fetches one page of artworks matching filters.
	// Parameters:
	//   - ctx: context for cancellation and deadlines.
	//   - page: 1-based page number.
	//   - pageSize: number of artworks per page.
	//   - filters: field filters; the zero value means unfiltered.
	// Returns:
	//   - *Page: the artworks and pagination metadata.
	//   - error: non-nil if fetching fails.
	FetchPage(ctx context.Context, page, pageSize int, filters domain.Filters) (*Page, error)
}

// Catalog extends ArtworkSource with the lookups the browsing API needs.
type Catalog interface {
	ArtworkSource

	// Search runs a full-text query over the collection.
	Search(ctx context.Context, query string, page, pageSize int) (*Page, error)

	// GetArtwork fetches a single artwork. Returns ErrNotFound for unknown IDs.
	GetArtwork(ctx context.Context, id int) (*domain.Artwork, error)
}
