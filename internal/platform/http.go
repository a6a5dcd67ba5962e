package platform

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/mediawall/mediawall/internal/thumbs"
)

// Network layer constants
const (
	DefaultRequestTimeout = 15 * time.Second

	// MaxThumbBytes caps the response body; thumbnails are small by nature
	MaxThumbBytes = 10 << 20
)

// HTTPFetcher implements thumbs.Fetcher over net/http. Each request carries
// the caller's context so group cancellation aborts the transfer; a
// per-request timeout is layered on top and surfaces as an ordinary network
// failure, never as cancellation.
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewHTTPFetcher creates a fetcher with the default per-request timeout
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client:  &http.Client{},
		timeout: DefaultRequestTimeout,
	}
}

// SetTimeout sets the per-request timeout
func (f *HTTPFetcher) SetTimeout(timeout time.Duration) {
	f.timeout = timeout
}

// Fetch issues one GET for a thumbnail resource
func (f *HTTPFetcher) Fetch(ctx context.Context, resourceURL string) (*thumbs.Response, error) {
	reqCtx, cancelFn := context.WithTimeout(ctx, f.timeout)
	defer cancelFn()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, resourceURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		// Cancellation always wins over the timeout layered on top
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, context.Canceled
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxThumbBytes))
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, context.Canceled
		}
		return nil, err
	}

	return &thumbs.Response{
		Status:     resp.StatusCode,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
		Body:       body,
	}, nil
}

// parseRetryAfter interprets a Retry-After header value as either a delay in
// seconds or an absolute HTTP date. Returns 0 for absent or unusable values
// and for dates already in the past.
func parseRetryAfter(value string, now time.Time) time.Duration {
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil {
		if delay := at.Sub(now); delay > 0 {
			return delay
		}
	}

	return 0
}
