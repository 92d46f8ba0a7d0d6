package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/artfolio/internal/domain"
	"github.com/timmy/artfolio/internal/logger"
	"github.com/timmy/artfolio/internal/storage"
	_ "golang.org/x/image/webp"
)

const (
	defaultMirrorTimeout = 30 * time.Second
	defaultMirrorMaxSize = 20 << 20
)

// ErrNoImage is returned when an artwork without an image is mirrored.
var ErrNoImage = errors.New("artwork has no image")

// MirrorConfig holds configuration for image mirroring.
type MirrorConfig struct {
	Timeout   time.Duration
	MaxSize   int64 // bytes
	UserAgent string
}

// MirrorResult describes a mirrored artwork image.
type MirrorResult struct {
	Key    string
	URL    string
	Width  int
	Height int
}

// MirrorService copies artwork images into object storage.
type MirrorService struct {
	client  *resty.Client
	storage storage.ObjectStorage
	logger  *logger.Logger
	maxSize int64
}

// NewMirrorService creates a new mirror service.
// Parameters:
//   - objectStorage: destination for mirrored images.
//   - log: logger instance.
//   - cfg: download settings; nil uses defaults.
//
// Returns:
//   - *MirrorService: initialized mirror service.
func NewMirrorService(objectStorage storage.ObjectStorage, log *logger.Logger, cfg *MirrorConfig) *MirrorService {
	timeout := defaultMirrorTimeout
	maxSize := int64(defaultMirrorMaxSize)
	userAgent := ""
	if cfg != nil {
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
		if cfg.MaxSize > 0 {
			maxSize = cfg.MaxSize
		}
		userAgent = cfg.UserAgent
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(500 * time.Millisecond)
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}

	return &MirrorService{
		client:  client,
		storage: objectStorage,
		logger:  log,
		maxSize: maxSize,
	}
}

// Mirror downloads the artwork image and uploads it to object storage.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - artwork: artwork whose ImageURL is mirrored.
//
// Returns:
//   - *MirrorResult: storage key, public URL and image dimensions.
//   - error: non-nil if download, decoding or upload fails.
func (s *MirrorService) Mirror(ctx context.Context, artwork *domain.Artwork) (*MirrorResult, error) {
	if !artwork.HasImage() || artwork.ImageURL == "" {
		return nil, ErrNoImage
	}

	startTime := time.Now()
	resp, err := s.client.R().SetContext(ctx).Get(artwork.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode())
	}

	data := resp.Body()
	if int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("image too large: %d bytes", len(data))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	key := storage.ArtworkImageKey(artwork.ID, extensionFor(format))
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentTypeFor(format)); err != nil {
		return nil, err
	}

	logger.With(logger.Fields{
		logger.FieldArtworkID: artwork.ID,
		logger.FieldSize:      len(data),
		"format":              format,
	}).WithDuration(time.Since(startTime).Milliseconds()).Info(ctx, "Artwork image mirrored")

	return &MirrorResult{
		Key:    key,
		URL:    s.storage.GetURL(key),
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// Remove deletes a previously mirrored image identified by its public URL.
func (s *MirrorService) Remove(ctx context.Context, artworkID int, mirrorURL string) error {
	if mirrorURL == "" {
		return nil
	}
	ext := strings.TrimPrefix(path.Ext(mirrorURL), ".")
	if ext == "" {
		return fmt.Errorf("cannot derive image extension from %q", mirrorURL)
	}
	return s.storage.Delete(ctx, storage.ArtworkImageKey(artworkID, ext))
}

func extensionFor(format string) string {
	switch format {
	case "jpeg":
		return "jpg"
	case "":
		return "bin"
	default:
		return format
	}
}

func contentTypeFor(format string) string {
	switch format {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
