package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/artfolio/internal/domain"
	"github.com/timmy/artfolio/internal/logger"
)

// memoryStorage is an in-memory ObjectStorage.
type memoryStorage struct {
	mu           sync.Mutex
	objects      map[string][]byte
	contentTypes map[string]string
	deleted      []string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (m *memoryStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	m.contentTypes[key] = contentType
	return nil
}

func (m *memoryStorage) GetURL(key string) string {
	return "https://cdn.test/" + key
}

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memoryStorage) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok, nil
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newImageServer(t *testing.T, body []byte, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMirrorService_Mirror(t *testing.T) {
	srv := newImageServer(t, pngBytes(t, 8, 5), http.StatusOK)
	store := newMemoryStorage()
	svc := NewMirrorService(store, logger.GetDefault(), nil)

	artwork := &domain.Artwork{ID: 27992, ImageID: "abc", ImageURL: srv.URL + "/abc/full/843,/0/default.jpg"}
	result, err := svc.Mirror(context.Background(), artwork)
	require.NoError(t, err)

	assert.Equal(t, "artworks/27992.png", result.Key)
	assert.Equal(t, "https://cdn.test/artworks/27992.png", result.URL)
	assert.Equal(t, 8, result.Width)
	assert.Equal(t, 5, result.Height)
	assert.Equal(t, "image/png", store.contentTypes[result.Key])
	assert.NotEmpty(t, store.objects[result.Key])
}

func TestMirrorService_MirrorErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    []byte
		status  int
		artwork func(url string) *domain.Artwork
		wantErr string
	}{
		{
			name:    "no image",
			status:  http.StatusOK,
			artwork: func(url string) *domain.Artwork { return &domain.Artwork{ID: 1} },
			wantErr: ErrNoImage.Error(),
		},
		{
			name:    "upstream error",
			body:    []byte("gone"),
			status:  http.StatusNotFound,
			artwork: func(url string) *domain.Artwork { return &domain.Artwork{ID: 1, ImageID: "x", ImageURL: url} },
			wantErr: "status 404",
		},
		{
			name:    "not an image",
			body:    []byte("<html></html>"),
			status:  http.StatusOK,
			artwork: func(url string) *domain.Artwork { return &domain.Artwork{ID: 1, ImageID: "x", ImageURL: url} },
			wantErr: "failed to decode image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newImageServer(t, tt.body, tt.status)
			store := newMemoryStorage()
			svc := NewMirrorService(store, logger.GetDefault(), nil)

			_, err := svc.Mirror(context.Background(), tt.artwork(srv.URL))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), "error %q should contain %q", err, tt.wantErr)
			assert.Empty(t, store.objects)
		})
	}
}

func TestMirrorService_Remove(t *testing.T) {
	store := newMemoryStorage()
	svc := NewMirrorService(store, logger.GetDefault(), nil)

	require.NoError(t, svc.Remove(context.Background(), 7, "https://cdn.test/artworks/7.jpg"))
	assert.Equal(t, []string{"artworks/7.jpg"}, store.deleted)

	require.NoError(t, svc.Remove(context.Background(), 8, ""))
	assert.Len(t, store.deleted, 1)
}
