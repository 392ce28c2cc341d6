package di

import (
	"context"
	"fmt"

	"foodgram_backend/internal/platform/config"
	platformhttp "foodgram_backend/internal/platform/http"
	"foodgram_backend/internal/platform/media"
)

// NewStorage returns the media backend selected by cfg.Media.Backend.
func NewStorage(ctx context.Context, cfg *config.Config) (media.Storage, error) {
	switch cfg.Media.Backend {
	case "s3":
		return media.NewS3Storage(ctx, cfg.S3, platformhttp.NewHTTPClient(cfg.S3.Timeout))
	case "local", "":
		return media.NewLocalStorage(cfg.Media.Root, cfg.Media.URL)
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.Media.Backend)
	}
}
