package platform

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("thumb-bytes"))
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher()
	resp, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resp.Status != http.StatusOK {
		t.Errorf("Status = %d, expected 200", resp.Status)
	}
	if string(resp.Body) != "thumb-bytes" {
		t.Errorf("Body = %q, expected thumbnail bytes", resp.Body)
	}
	if resp.RetryAfter != 0 {
		t.Errorf("RetryAfter = %v, expected 0 without header", resp.RetryAfter)
	}
}

func TestFetch_RateLimitedWithHint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher()
	resp, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resp.Status != http.StatusTooManyRequests {
		t.Errorf("Status = %d, expected 429", resp.Status)
	}
	if resp.RetryAfter != 30*time.Second {
		t.Errorf("RetryAfter = %v, expected 30s", resp.RetryAfter)
	}
}

func TestFetch_CancellationWins(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancelFn := context.WithCancel(context.Background())
	go func() {
		<-started
		cancelFn()
	}()

	fetcher := NewHTTPFetcher()
	_, err := fetcher.Fetch(ctx, server.URL)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestFetch_TimeoutIsNotCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(5 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher()
	fetcher.SetTimeout(50 * time.Millisecond)

	_, err := fetcher.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected a timeout error")
	}
	if errors.Is(err, context.Canceled) {
		t.Error("A timeout must not masquerade as cancellation")
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		value    string
		expected time.Duration
	}{
		{"", 0},
		{"30", 30 * time.Second},
		{"0", 0},
		{"-5", 0},
		{"garbage", 0},
		{"Sun, 01 Jun 2025 12:01:00 GMT", time.Minute},
		{"Sun, 01 Jun 2025 11:00:00 GMT", 0}, // already past
	}

	for _, test := range tests {
		result := parseRetryAfter(test.value, now)
		if result != test.expected {
			t.Errorf("parseRetryAfter(%q) = %v, expected %v", test.value, result, test.expected)
		}
	}
}
