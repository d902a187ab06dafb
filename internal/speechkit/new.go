package speechkit

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/lead-digest/internal/config"
	"github.com/nguyentantai21042004/lead-digest/internal/logger"
)

type implClient struct {
	cfg          config.SpeechKitConfig
	httpClient   *http.Client
	pollInterval time.Duration
	pollAttempts int
	logger       logger.Logger
}

// Option tunes a Client.
type Option func(*implClient)

// WithPolling overrides the interval between operation polls and their count.
func WithPolling(interval time.Duration, attempts int) Option {
	return func(c *implClient) {
		c.pollInterval = interval
		c.pollAttempts = attempts
	}
}

// New creates a Client from cfg. Per-request deadlines come from the caller's
// context plus fixed per-call timeouts.
func New(cfg config.SpeechKitConfig, log logger.Logger, opts ...Option) Client {
	c := &implClient{
		cfg:          cfg,
		httpClient:   &http.Client{},
		pollInterval: defaultPollInterval,
		pollAttempts: defaultPollAttempts,
		logger:       log.With("component", "speechkit"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
