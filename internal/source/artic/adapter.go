package artic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"github.com/timmy/artfolio/internal/domain"
	"github.com/timmy/artfolio/internal/logger"
	"github.com/timmy/artfolio/internal/metrics"
	"github.com/timmy/artfolio/internal/source"
	"golang.org/x/time/rate"
)

const (
	SourceID   = "artic"
	SourceName = "Art Institute of Chicago"

	defaultBaseURL = "https://api.artic.edu/api/v1"
	defaultIIIFURL = "https://www.artic.edu/iiif/2"
)

// Fields requested from the API for every artwork.
var artworkFields = []string{
	"id",
	"title",
	"artist_display",
	"artist_title",
	"date_display",
	"image_id",
	"description",
	"provenance_text",
	"publication_history",
	"exhibition_history",
	"department_title",
	"artwork_type_title",
	"place_of_origin",
	"medium_display",
}

// Config holds configuration for the Art Institute of Chicago adapter.
type Config struct {
	BaseURL   string
	IIIFURL   string
	Timeout   time.Duration
	UserAgent string

	// RateLimit is the steady request rate per second; Burst the bucket size.
	RateLimit float64
	Burst     int

	// Consecutive failures before the breaker opens, and how long it stays open.
	FailureThreshold uint32
	BreakerTimeout   time.Duration
}

// Adapter implements source.Catalog against the Art Institute of Chicago API.
type Adapter struct {
	client  *resty.Client
	iiifURL string
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[*resty.Response]
}

// NewAdapter creates a new Art Institute of Chicago adapter.
// Parameters:
//   - cfg: adapter configuration; zero values fall back to defaults.
//
// Returns:
//   - *Adapter: initialized adapter.
func NewAdapter(cfg *Config) *Adapter {
	if cfg == nil {
		cfg = &Config{}
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	iiifURL := strings.TrimSuffix(cfg.IIIFURL, "/")
	if iiifURL == "" {
		iiifURL = defaultIIIFURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		// The API asks clients to identify themselves.
		client.SetHeader("AIC-User-Agent", cfg.UserAgent)
		client.SetHeader("User-Agent", cfg.UserAgent)
	}
	client.SetTimeout(timeout)

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	breakerTimeout := cfg.BreakerTimeout
	if breakerTimeout <= 0 {
		breakerTimeout = 30 * time.Second
	}

	return &Adapter{
		client:  client,
		iiifURL: iiifURL,
		limiter: rate.NewLimiter(limit, burst),
		breaker: gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
			Name:        SourceID,
			MaxRequests: 1,
			Timeout:     breakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				metrics.BreakerStateChanges.WithLabelValues(name, to.String()).Inc()
				logger.With(logger.Fields{
					logger.FieldSource: name,
					"from":             from.String(),
					"to":               to.String(),
				}).Warn(context.Background(), "Museum API circuit breaker changed state")
			},
		}),
	}
}

// GetSourceID returns the unique identifier for this source.
func (a *Adapter) GetSourceID() string {
	return SourceID
}

// GetDisplayName returns a human-readable name for this source.
func (a *Adapter) GetDisplayName() string {
	return SourceName
}

// searchRequest is the body of POST /artworks/search.
type searchRequest struct {
	Query  map[string]interface{} `json:"query,omitempty"`
	Q      string                 `json:"q,omitempty"`
	Fields []string               `json:"fields"`
	Page   int                    `json:"page"`
	Limit  int                    `json:"limit"`
}

type apiPagination struct {
	Total       int `json:"total"`
	Limit       int `json:"limit"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
}

type apiConfig struct {
	IIIFURL string `json:"iiif_url"`
}

type apiArtwork struct {
	ID                 int    `json:"id"`
	Title              string `json:"title"`
	ArtistDisplay      string `json:"artist_display"`
	ArtistTitle        string `json:"artist_title"`
	DateDisplay        string `json:"date_display"`
	ImageID            string `json:"image_id"`
	Description        string `json:"description"`
	ProvenanceText     string `json:"provenance_text"`
	PublicationHistory string `json:"publication_history"`
	ExhibitionHistory  string `json:"exhibition_history"`
	DepartmentTitle    string `json:"department_title"`
	ArtworkTypeTitle   string `json:"artwork_type_title"`
	PlaceOfOrigin      string `json:"place_of_origin"`
	MediumDisplay      string `json:"medium_display"`
}

type listResponse struct {
	Pagination apiPagination `json:"pagination"`
	Data       []apiArtwork  `json:"data"`
	Config     apiConfig     `json:"config"`
}

type detailResponse struct {
	Data   apiArtwork `json:"data"`
	Config apiConfig  `json:"config"`
}

type errorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// FetchPage fetches one page of artworks matching filters.
func (a *Adapter) FetchPage(ctx context.Context, page, pageSize int, filters domain.Filters) (*source.Page, error) {
	req := searchRequest{
		Query:  buildQuery(filters),
		Fields: artworkFields,
		Page:   page,
		Limit:  pageSize,
	}
	return a.search(ctx, &req)
}

// Search runs a full-text query over the collection.
func (a *Adapter) Search(ctx context.Context, query string, page, pageSize int) (*source.Page, error) {
	req := searchRequest{
		Q:      query,
		Fields: artworkFields,
		Page:   page,
		Limit:  pageSize,
	}
	return a.search(ctx, &req)
}

// GetArtwork fetches a single artwork by ID.
func (a *Adapter) GetArtwork(ctx context.Context, id int) (*domain.Artwork, error) {
	var resp detailResponse
	var apiErr errorResponse
	httpResp, err := a.execute(ctx, func() (*resty.Response, error) {
		return a.client.R().
			SetContext(ctx).
			SetPathParam("id", strconv.Itoa(id)).
			SetQueryParam("fields", strings.Join(artworkFields, ",")).
			SetResult(&resp).
			SetError(&apiErr).
			Get("/artworks/{id}")
	})
	if err != nil {
		return nil, err
	}

	if httpResp.StatusCode() == http.StatusNotFound {
		return nil, source.ErrNotFound
	}
	if httpResp.StatusCode() != http.StatusOK {
		return nil, apiError(httpResp.StatusCode(), &apiErr)
	}

	artwork := a.toDomain(&resp.Data, resp.Config.IIIFURL)
	return &artwork, nil
}

func (a *Adapter) search(ctx context.Context, req *searchRequest) (*source.Page, error) {
	var resp listResponse
	var apiErr errorResponse
	httpResp, err := a.execute(ctx, func() (*resty.Response, error) {
		return a.client.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&resp).
			SetError(&apiErr).
			Post("/artworks/search")
	})
	if err != nil {
		return nil, err
	}

	if httpResp.StatusCode() != http.StatusOK {
		return nil, apiError(httpResp.StatusCode(), &apiErr)
	}

	items := make([]domain.Artwork, 0, len(resp.Data))
	for i := range resp.Data {
		items = append(items, a.toDomain(&resp.Data[i], resp.Config.IIIFURL))
	}

	return &source.Page{
		Items: items,
		Pagination: source.Pagination{
			Total:       resp.Pagination.Total,
			Limit:       resp.Pagination.Limit,
			CurrentPage: resp.Pagination.CurrentPage,
			TotalPages:  resp.Pagination.TotalPages,
		},
	}, nil
}

// execute waits for the rate limiter and runs call through the circuit breaker.
// Transport errors and 5xx/429 responses count as breaker failures.
func (a *Adapter) execute(ctx context.Context, call func() (*resty.Response, error)) (*resty.Response, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := a.breaker.Execute(func() (*resty.Response, error) {
		resp, err := call()
		if err != nil {
			return nil, fmt.Errorf("failed to call museum API: %w", err)
		}
		if resp.StatusCode() >= http.StatusInternalServerError || resp.StatusCode() == http.StatusTooManyRequests {
			return resp, fmt.Errorf("museum API error: status %d", resp.StatusCode())
		}
		return resp, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("museum API unavailable: %w", err)
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func apiError(status int, body *errorResponse) error {
	if body != nil && body.Detail != "" {
		return fmt.Errorf("museum API error: status %d: %s", status, body.Detail)
	}
	return fmt.Errorf("museum API error: status %d", status)
}

func (a *Adapter) toDomain(item *apiArtwork, iiifURL string) domain.Artwork {
	artwork := domain.Artwork{
		ID:                 item.ID,
		Title:              item.Title,
		ArtistDisplay:      item.ArtistDisplay,
		DateDisplay:        item.DateDisplay,
		ImageID:            item.ImageID,
		Description:        item.Description,
		Provenance:         item.ProvenanceText,
		PublicationHistory: item.PublicationHistory,
		ExhibitionHistory:  item.ExhibitionHistory,
		Department:         item.DepartmentTitle,
		ArtworkType:        item.ArtworkTypeTitle,
		PlaceOfOrigin:      item.PlaceOfOrigin,
		Medium:             item.MediumDisplay,
		Artist:             item.ArtistTitle,
	}
	if artwork.HasImage() {
		base := strings.TrimSuffix(iiifURL, "/")
		if base == "" {
			base = a.iiifURL
		}
		artwork.ImageURL = ImageURL(base, artwork.ImageID)
	}
	return artwork
}

// ImageURL builds the IIIF URL for an image at the API's recommended 843px width.
func ImageURL(iiifURL, imageID string) string {
	return fmt.Sprintf("%s/%s/full/843,/0/default.jpg", iiifURL, imageID)
}
