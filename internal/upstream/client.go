// Package upstream downloads the hosted game-log export.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a minimal HTTP client for the export endpoint.
type Client struct {
	exportURL  string
	httpClient *http.Client
}

// NewClient creates a client for the given export URL. A zero timeout
// defaults to 30 seconds.
func NewClient(exportURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		exportURL:  exportURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchExport downloads the export and returns its raw bytes.
//
// Returns a descriptive error for auth problems (403), a missing export
// (404), and upstream rate limiting (429/503).
func (c *Client) FetchExport(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.exportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch export: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("upstream: export not found at %s", c.exportURL)
	case http.StatusForbidden, http.StatusUnauthorized:
		return nil, fmt.Errorf("upstream: access denied (%d), check the export URL", resp.StatusCode)
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return nil, fmt.Errorf("upstream: rate limited (%d), wait a moment and retry", resp.StatusCode)
	default:
		return nil, fmt.Errorf("upstream: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read export body: %w", err)
	}
	return body, nil
}
