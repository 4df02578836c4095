package jooble

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL = "https://jooble.org/api/"
	source = "jooble"
	// DefaultRadius is the search radius in kilometres around the location.
	DefaultRadius = 50
)

// Cache stores raw search responses. Implementations must be safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

type Client struct {
	apiKey     string
	logger     *zap.Logger
	cache      Cache
	HTTPClient *http.Client
	APIURL     string
	Radius     int
}

// New creates a Jooble client. An empty key is accepted; searches then fail
// with errs.ErrMisconfigured.
func New(logger *zap.Logger, apiKey string, timeout time.Duration) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		apiKey: apiKey,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named(source),
		Radius: DefaultRadius,
	}
}

// WithCache enables response caching.
func (c *Client) WithCache(cache Cache) *Client {
	c.cache = cache
	return c
}
