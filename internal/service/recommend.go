package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timmy/artfolio/internal/domain"
	"github.com/timmy/artfolio/internal/logger"
	"github.com/timmy/artfolio/internal/metrics"
	"github.com/timmy/artfolio/internal/source"
)

const (
	// TargetRecommendations is the number of recommendations a run tries to collect.
	TargetRecommendations = 20
	// PageSize is the page size of every source fetch.
	PageSize = 12
	// MaxPagesPerStrategy caps the pages fetched for one strategy or the fallback pass.
	MaxPagesPerStrategy = 3

	defaultFetchTimeout = 15 * time.Second
)

// ErrHistoryUnavailable is returned when the saved or disliked history cannot be read.
var ErrHistoryUnavailable = errors.New("history unavailable")

// HistoryStore provides the user's saved and disliked artworks.
type HistoryStore interface {
	GetSaved(ctx context.Context) ([]domain.SavedArtwork, error)
	GetDisliked(ctx context.Context) ([]domain.DislikedArtwork, error)
}

// RecommendConfig holds configuration for the recommendation service.
type RecommendConfig struct {
	FetchTimeout time.Duration // per page fetch
}

// RecommendationService turns the saved/disliked history into recommended artworks.
type RecommendationService struct {
	history      HistoryStore
	source       source.ArtworkSource
	logger       *logger.Logger
	fetchTimeout time.Duration
}

// NewRecommendationService creates a new recommendation service.
// Parameters:
//   - history: store returning saved and disliked artworks.
//   - src: paginated artwork source queried per strategy.
//   - log: logger instance.
//   - cfg: recommendation settings; nil uses defaults.
//
// Returns:
//   - *RecommendationService: initialized service.
func NewRecommendationService(
	history HistoryStore,
	src source.ArtworkSource,
	log *logger.Logger,
	cfg *RecommendConfig,
) *RecommendationService {
	timeout := defaultFetchTimeout
	if cfg != nil && cfg.FetchTimeout > 0 {
		timeout = cfg.FetchTimeout
	}
	return &RecommendationService{
		history:      history,
		source:       src,
		logger:       log,
		fetchTimeout: timeout,
	}
}

// log returns a logger from context if available, otherwise returns the service logger
func (s *RecommendationService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// accumulator collects accepted artworks for one Generate call.
type accumulator struct {
	items    []domain.Artwork
	seen     map[int]struct{}
	saved    map[int]struct{}
	disliked map[int]struct{}
}

func newAccumulator(saved []domain.SavedArtwork, disliked []domain.DislikedArtwork) *accumulator {
	acc := &accumulator{
		items:    make([]domain.Artwork, 0, TargetRecommendations),
		seen:     make(map[int]struct{}),
		saved:    make(map[int]struct{}, len(saved)),
		disliked: make(map[int]struct{}, len(disliked)),
	}
	for i := range saved {
		acc.saved[saved[i].ID] = struct{}{}
	}
	for i := range disliked {
		acc.disliked[disliked[i].ID] = struct{}{}
	}
	return acc
}

func (a *accumulator) full() bool {
	return len(a.items) >= TargetRecommendations
}

// offer accepts artwork if it is fresh, displayable and not excluded.
func (a *accumulator) offer(artwork domain.Artwork) bool {
	if a.full() || !artwork.HasImage() {
		return false
	}
	if _, ok := a.seen[artwork.ID]; ok {
		return false
	}
	if _, ok := a.saved[artwork.ID]; ok {
		return false
	}
	if _, ok := a.disliked[artwork.ID]; ok {
		return false
	}
	a.seen[artwork.ID] = struct{}{}
	a.items = append(a.items, artwork)
	return true
}

// Generate builds recommendations from the current history.
// Parameters:
//   - ctx: context for cancellation; also bounds every page fetch.
//
// Returns:
//   - *domain.RecommendationResult: recommendations and their summary.
//   - error: wraps ErrHistoryUnavailable when history cannot be read.
func (s *RecommendationService) Generate(ctx context.Context) (*domain.RecommendationResult, error) {
	startTime := time.Now()
	ctx = logger.SetComponent(ctx, "recommend")

	saved, err := s.history.GetSaved(ctx)
	if err != nil {
		metrics.RecommendationRuns.WithLabelValues("history_error").Inc()
		return nil, fmt.Errorf("%w: %w", ErrHistoryUnavailable, err)
	}
	disliked, err := s.history.GetDisliked(ctx)
	if err != nil {
		metrics.RecommendationRuns.WithLabelValues("history_error").Inc()
		return nil, fmt.Errorf("%w: %w", ErrHistoryUnavailable, err)
	}

	if len(saved) == 0 {
		metrics.RecommendationRuns.WithLabelValues("no_history").Inc()
		s.log(ctx).Info("No saved artworks, skipping recommendation")
		return &domain.RecommendationResult{
			Recommendations: []domain.Artwork{},
			Summary: domain.RecommendationSummary{
				Reasons: []string{noHistoryReason},
			},
		}, nil
	}

	profile := buildPreferenceProfile(saved)
	acc := newAccumulator(saved, disliked)

	for _, filters := range buildStrategies(profile) {
		if acc.full() {
			break
		}
		if err := s.fetchStrategy(ctx, acc, filters, "strategy"); err != nil {
			s.log(ctx).WithError(err).WithField(logger.FieldStrategy, filters.String()).
				Warn("Strategy fetch failed, moving to next strategy")
		}
	}

	if !acc.full() {
		if err := s.fetchStrategy(ctx, acc, domain.Filters{}, "fallback"); err != nil {
			s.log(ctx).WithError(err).Warn("Fallback fetch failed, returning partial recommendations")
		}
	}

	result := &domain.RecommendationResult{
		Recommendations: acc.items,
		Summary:         buildSummary(profile, len(acc.items)),
	}

	outcome := "ok"
	if len(acc.items) == 0 {
		outcome = "empty"
	}
	elapsed := time.Since(startTime)
	metrics.RecommendationRuns.WithLabelValues(outcome).Inc()
	metrics.RecommendationsReturned.Observe(float64(len(acc.items)))
	metrics.RecommendationDuration.Observe(elapsed.Seconds())

	logger.With(logger.Fields{
		"saved":    len(saved),
		"disliked": len(disliked),
	}).WithCount(len(acc.items)).WithDuration(elapsed.Milliseconds()).
		Info(ctx, "Recommendations generated")

	return result, nil
}

// fetchStrategy pages through one filter combination, feeding the accumulator.
// It returns the error of the page that aborted the pass, if any.
func (s *RecommendationService) fetchStrategy(ctx context.Context, acc *accumulator, filters domain.Filters, pass string) error {
	for page := 1; page <= MaxPagesPerStrategy; page++ {
		if acc.full() {
			return nil
		}

		result, err := s.fetchPage(ctx, page, filters)
		metrics.RecordPageFetch(pass, err)
		if err != nil {
			return fmt.Errorf("page %d: %w", page, err)
		}

		accepted := 0
		for _, artwork := range result.Items {
			if acc.offer(artwork) {
				accepted++
			}
		}

		logger.With(logger.Fields{
			logger.FieldStrategy: filters.String(),
			logger.FieldPage:     page,
			"accepted":           accepted,
		}).WithCount(len(result.Items)).Debug(ctx, "Fetched recommendation page")

		if accepted == 0 || len(result.Items) < PageSize {
			return nil
		}
	}
	return nil
}

func (s *RecommendationService) fetchPage(ctx context.Context, page int, filters domain.Filters) (*source.Page, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	result, err := s.source.FetchPage(fetchCtx, page, PageSize, filters)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return &source.Page{}, nil
	}
	return result, nil
}
