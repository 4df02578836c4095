package github

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL    = "https://api.github.com"
	userAgent = "devmatch/1.0"
	source    = "github"
	// Max value for repositories per page.
	MaxPerPage = 100
)

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New creates a GitHub REST client. An empty token is valid and means
// unauthenticated requests with the lower rate limit.
func New(logger *zap.Logger, token string, timeout time.Duration) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		logger:    logger.Named(source),
		UserAgent: userAgent,
	}
}
