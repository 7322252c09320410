package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "go-sync-keeper"

// HTTPClient is the resty client the sync adapter talks to the server with.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a JSON client rooted at baseURL. A zero timeout
// leaves requests bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", userAgent)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
