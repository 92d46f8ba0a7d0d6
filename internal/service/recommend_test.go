package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/artfolio/internal/domain"
	"github.com/timmy/artfolio/internal/logger"
	"github.com/timmy/artfolio/internal/source"
)

type fetchCall struct {
	Page     int
	PageSize int
	Filters  domain.Filters
}

// mockSource records every FetchPage call and answers through fetch.
type mockSource struct {
	mu    sync.Mutex
	calls []fetchCall
	fetch func(ctx context.Context, call fetchCall) (*source.Page, error)
}

func (m *mockSource) FetchPage(ctx context.Context, page, pageSize int, filters domain.Filters) (*source.Page, error) {
	call := fetchCall{Page: page, PageSize: pageSize, Filters: filters}
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()
	if m.fetch == nil {
		return &source.Page{}, nil
	}
	return m.fetch(ctx, call)
}

func (m *mockSource) Calls() []fetchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]fetchCall(nil), m.calls...)
}

type mockHistory struct {
	saved       []domain.SavedArtwork
	disliked    []domain.DislikedArtwork
	savedErr    error
	dislikedErr error
}

func (m *mockHistory) GetSaved(ctx context.Context) ([]domain.SavedArtwork, error) {
	return m.saved, m.savedErr
}

func (m *mockHistory) GetDisliked(ctx context.Context) ([]domain.DislikedArtwork, error) {
	return m.disliked, m.dislikedErr
}

// artworkRange returns n displayable artworks with IDs start..start+n-1.
func artworkRange(start, n int) []domain.Artwork {
	items := make([]domain.Artwork, 0, n)
	for id := start; id < start+n; id++ {
		items = append(items, domain.Artwork{ID: id, Title: "Artwork", ImageID: "img"})
	}
	return items
}

func pageOf(items []domain.Artwork) *source.Page {
	return &source.Page{Items: items}
}

func savedArtwork(id int, dept, artworkType string) domain.SavedArtwork {
	return domain.SavedArtwork{
		Artwork: domain.Artwork{ID: id, Title: "Saved", ImageID: "img", Department: dept, ArtworkType: artworkType},
		SavedAt: time.Now().UnixMilli(),
	}
}

func newTestRecommendationService(history HistoryStore, src source.ArtworkSource) *RecommendationService {
	return NewRecommendationService(history, src, logger.GetDefault(), &RecommendConfig{FetchTimeout: time.Second})
}

func TestGenerate_NoSavedHistory(t *testing.T) {
	src := &mockSource{}
	svc := newTestRecommendationService(&mockHistory{}, src)

	result, err := svc.Generate(context.Background())
	require.NoError(t, err)

	assert.Empty(t, result.Recommendations)
	assert.NotNil(t, result.Recommendations)
	assert.Equal(t, 0, result.Summary.TotalRecommendations)
	assert.Equal(t, []string{noHistoryReason}, result.Summary.Reasons)
	assert.True(t, result.Summary.Filters.IsEmpty())
	assert.Empty(t, src.Calls(), "no source calls expected without history")
}

func TestGenerate_HistoryFailure(t *testing.T) {
	cause := errors.New("disk on fire")

	tests := []struct {
		name    string
		history *mockHistory
	}{
		{"saved fails", &mockHistory{savedErr: cause}},
		{"disliked fails", &mockHistory{
			saved:       []domain.SavedArtwork{savedArtwork(1, "Modern Art", "Painting")},
			dislikedErr: cause,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &mockSource{}
			svc := newTestRecommendationService(tt.history, src)

			result, err := svc.Generate(context.Background())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrHistoryUnavailable)
			assert.ErrorIs(t, err, cause)
			assert.Empty(t, src.Calls())
		})
	}
}

func TestGenerate_EndToEndSingleSavedArtwork(t *testing.T) {
	strategy := domain.Filters{Department: "Modern Art", ArtworkType: "Painting"}
	src := &mockSource{
		fetch: func(ctx context.Context, call fetchCall) (*source.Page, error) {
			if call.Filters == strategy && call.Page == 1 {
				return pageOf(artworkRange(100, 12)), nil
			}
			return pageOf(nil), nil
		},
	}
	history := &mockHistory{saved: []domain.SavedArtwork{savedArtwork(1, "Modern Art", "Painting")}}
	svc := newTestRecommendationService(history, src)

	result, err := svc.Generate(context.Background())
	require.NoError(t, err)

	assert.Len(t, result.Recommendations, 12)
	assert.Equal(t, 12, result.Summary.TotalRecommendations)

	calls := src.Calls()
	require.GreaterOrEqual(t, len(calls), 2)
	assert.Equal(t, fetchCall{Page: 1, PageSize: 12, Filters: strategy}, calls[0])
	assert.Equal(t, fetchCall{Page: 2, PageSize: 12, Filters: strategy}, calls[1])

	assert.Equal(t, domain.Filters{Department: "Modern Art"}, result.Summary.Filters)
	assert.Contains(t, result.Summary.Reasons, fewRemark)
}

func TestGenerate_ExclusionAndDedup(t *testing.T) {
	history := &mockHistory{
		saved: []domain.SavedArtwork{
			savedArtwork(1, "Modern Art", "Painting"),
			savedArtwork(2, "Modern Art", "Painting"),
		},
		disliked: []domain.DislikedArtwork{
			{Artwork: domain.Artwork{ID: 3, ImageID: "img"}, DislikedAt: time.Now().UnixMilli()},
			{Artwork: domain.Artwork{ID: 4, ImageID: "img"}, DislikedAt: time.Now().UnixMilli()},
		},
	}

	src := &mockSource{
		fetch: func(ctx context.Context, call fetchCall) (*source.Page, error) {
			items := []domain.Artwork{
				{ID: 1, ImageID: "img"},  // saved
				{ID: 3, ImageID: "img"},  // disliked
				{ID: 50, ImageID: ""},    // no image
				{ID: 60, ImageID: "img"}, // repeated on every page
			}
			items = append(items, artworkRange(1000+call.Page*100+len(call.Filters.String()), 8)...)
			return pageOf(items), nil
		},
	}
	svc := newTestRecommendationService(history, src)

	result, err := svc.Generate(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, result.Recommendations)
	assert.LessOrEqual(t, len(result.Recommendations), TargetRecommendations)

	seen := make(map[int]bool)
	for _, r := range result.Recommendations {
		assert.False(t, seen[r.ID], "duplicate recommendation %d", r.ID)
		seen[r.ID] = true
		assert.NotContains(t, []int{1, 2}, r.ID, "saved artwork recommended")
		assert.NotContains(t, []int{3, 4}, r.ID, "disliked artwork recommended")
		assert.True(t, r.HasImage(), "artwork %d has no image", r.ID)
	}
	assert.True(t, seen[60])
}

func TestGenerate_TargetCap(t *testing.T) {
	next := 100
	src := &mockSource{
		fetch: func(ctx context.Context, call fetchCall) (*source.Page, error) {
			items := artworkRange(next, 12)
			next += 12
			return pageOf(items), nil
		},
	}
	history := &mockHistory{saved: []domain.SavedArtwork{savedArtwork(1, "Modern Art", "Painting")}}
	svc := newTestRecommendationService(history, src)

	result, err := svc.Generate(context.Background())
	require.NoError(t, err)

	assert.Len(t, result.Recommendations, TargetRecommendations)
	assert.Equal(t, TargetRecommendations, result.Summary.TotalRecommendations)
	assert.Contains(t, result.Summary.Reasons, fullSetRemark)

	// 12 from page 1, 8 from page 2, then the target stops everything.
	calls := src.Calls()
	require.Len(t, calls, 2)
	for _, call := range calls {
		assert.Equal(t, PageSize, call.PageSize)
		assert.Equal(t, domain.Filters{Department: "Modern Art", ArtworkType: "Painting"}, call.Filters)
	}
}

func TestGenerate_PerStrategyPageCap(t *testing.T) {
	next := 100
	src := &mockSource{
		fetch: func(ctx context.Context, call fetchCall) (*source.Page, error) {
			// One fresh artwork per full page, padded with the same saved ID.
			items := []domain.Artwork{{ID: next, ImageID: "img"}}
			next++
			for len(items) < PageSize {
				items = append(items, domain.Artwork{ID: 1, ImageID: "img"})
			}
			return &source.Page{
				Items:      items,
				Pagination: source.Pagination{CurrentPage: call.Page, TotalPages: 1000},
			}, nil
		},
	}
	history := &mockHistory{saved: []domain.SavedArtwork{savedArtwork(1, "Modern Art", "Painting")}}
	svc := newTestRecommendationService(history, src)

	result, err := svc.Generate(context.Background())
	require.NoError(t, err)

	perFilter := make(map[domain.Filters]int)
	for _, call := range src.Calls() {
		perFilter[call.Filters]++
	}
	// Three strategies plus the fallback, three pages each.
	require.Len(t, perFilter, 4)
	for filters, count := range perFilter {
		assert.Equal(t, MaxPagesPerStrategy, count, "pages for %s", filters)
	}
	assert.Len(t, result.Recommendations, 12)
}

func TestGenerate_AllStrategiesFailStillRunsFallback(t *testing.T) {
	src := &mockSource{
		fetch: func(ctx context.Context, call fetchCall) (*source.Page, error) {
			if !call.Filters.IsEmpty() {
				return nil, errors.New("museum API unavailable")
			}
			return pageOf(artworkRange(500, 5)), nil
		},
	}
	saved := savedArtwork(1, "Modern Art", "Painting")
	saved.PlaceOfOrigin = "France"
	saved.Medium = "Oil on canvas"
	history := &mockHistory{saved: []domain.SavedArtwork{saved}}
	svc := newTestRecommendationService(history, src)

	result, err := svc.Generate(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Recommendations, 5)

	var filtered, fallback []fetchCall
	for _, call := range src.Calls() {
		if call.Filters.IsEmpty() {
			fallback = append(fallback, call)
		} else {
			filtered = append(filtered, call)
		}
	}
	// Each of the five strategies stops after its first failed page.
	assert.Len(t, filtered, 5)
	for _, call := range filtered {
		assert.Equal(t, 1, call.Page)
	}
	// A short fallback page ends the pass.
	require.Len(t, fallback, 1)
	assert.Equal(t, 1, fallback[0].Page)
}

func TestGenerate_FallbackFailureIsSwallowed(t *testing.T) {
	src := &mockSource{
		fetch: func(ctx context.Context, call fetchCall) (*source.Page, error) {
			return nil, errors.New("connection refused")
		},
	}
	history := &mockHistory{saved: []domain.SavedArtwork{savedArtwork(1, "Modern Art", "")}}
	svc := newTestRecommendationService(history, src)

	result, err := svc.Generate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Recommendations)
	assert.Equal(t, 0, result.Summary.TotalRecommendations)

	calls := src.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, domain.Filters{Department: "Modern Art"}, calls[0].Filters)
	assert.True(t, calls[1].Filters.IsEmpty())

	// No count remark for an empty result.
	for _, reason := range result.Summary.Reasons {
		assert.NotEqual(t, fewRemark, reason)
	}
}

func TestGenerate_StopsPagingOnShortOrStalePage(t *testing.T) {
	tests := []struct {
		name      string
		firstPage []domain.Artwork
		wantCalls int
	}{
		{
			name:      "short page ends the strategy",
			firstPage: artworkRange(100, 7),
			wantCalls: 1,
		},
		{
			name: "page with nothing accepted ends the strategy",
			firstPage: func() []domain.Artwork {
				items := make([]domain.Artwork, PageSize)
				for i := range items {
					items[i] = domain.Artwork{ID: 1, ImageID: "img"}
				}
				return items
			}(),
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &mockSource{
				fetch: func(ctx context.Context, call fetchCall) (*source.Page, error) {
					if call.Filters.IsEmpty() {
						return pageOf(nil), nil
					}
					if call.Page == 1 {
						return pageOf(tt.firstPage), nil
					}
					return pageOf(artworkRange(900, PageSize)), nil
				},
			}
			history := &mockHistory{saved: []domain.SavedArtwork{savedArtwork(1, "Modern Art", "")}}
			svc := newTestRecommendationService(history, src)

			_, err := svc.Generate(context.Background())
			require.NoError(t, err)

			strategyCalls := 0
			for _, call := range src.Calls() {
				if !call.Filters.IsEmpty() {
					strategyCalls++
				}
			}
			assert.Equal(t, tt.wantCalls, strategyCalls)
		})
	}
}

func TestGenerate_SlowFetchTimesOut(t *testing.T) {
	src := &mockSource{
		fetch: func(ctx context.Context, call fetchCall) (*source.Page, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	history := &mockHistory{saved: []domain.SavedArtwork{savedArtwork(1, "Modern Art", "")}}
	svc := NewRecommendationService(history, src, logger.GetDefault(), &RecommendConfig{FetchTimeout: 20 * time.Millisecond})

	start := time.Now()
	result, err := svc.Generate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Recommendations)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Len(t, src.Calls(), 2)
}

func TestNewRecommendationService_DefaultFetchTimeout(t *testing.T) {
	svc := NewRecommendationService(&mockHistory{}, &mockSource{}, logger.GetDefault(), nil)
	assert.Equal(t, defaultFetchTimeout, svc.fetchTimeout)
}
