package storage

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/nguyentantai21042004/lead-digest/internal/config"
	"github.com/nguyentantai21042004/lead-digest/internal/logger"
)

const defaultPublicBase = "https://storage.googleapis.com"

type implUploader struct {
	client     *storage.Client
	bucket     string
	publicBase string
	logger     logger.Logger
}

// New creates an Uploader for cfg.Bucket. It returns nil, nil when no bucket is
// configured so callers can tell "not set up" apart from a broken setup.
func New(ctx context.Context, cfg config.StorageConfig, log logger.Logger) (Uploader, error) {
	if cfg.Bucket == "" {
		return nil, nil
	}

	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &implUploader{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: publicBase(cfg),
		logger:     log.With("component", "storage"),
	}, nil
}

func publicBase(cfg config.StorageConfig) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	return defaultPublicBase + "/" + cfg.Bucket
}
