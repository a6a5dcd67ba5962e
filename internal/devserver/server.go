package devserver

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Behavior knobs for exercising the acquisition pipeline against a local
// endpoint
const (
	// DefaultWarmupRequests is how many times a thumbnail answers 202
	// before its first 200
	DefaultWarmupRequests = 2

	// DefaultRatePerSecond caps accepted requests; excess traffic gets 429
	DefaultRatePerSecond = 20

	DefaultRetryAfterSeconds = 2

	ThumbWidth  = 320
	ThumbHeight = 180
)

// Server is a local thumbnail endpoint that mimics a CDN still rendering
// posters: each ID answers 202 a configurable number of times before
// producing an image, and a token bucket turns bursts into 429 responses.
type Server struct {
	warmup     int
	rate       int
	retryAfter int
	logger     *log.Logger

	mu     sync.Mutex
	seen   map[string]int
	tokens int
	refill time.Time
}

// Option configures a Server
type Option func(*Server)

// WithWarmup sets how many 202 responses precede the first 200 per ID
func WithWarmup(n int) Option {
	return func(s *Server) { s.warmup = n }
}

// WithRate sets the accepted requests per second before 429
func WithRate(n int) Option {
	return func(s *Server) { s.rate = n }
}

// WithLogger sets the request logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New creates a dev thumbnail server
func New(opts ...Option) *Server {
	s := &Server{
		warmup:     DefaultWarmupRequests,
		rate:       DefaultRatePerSecond,
		retryAfter: DefaultRetryAfterSeconds,
		seen:       make(map[string]int),
		refill:     time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.tokens = s.rate
	return s
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/thumb/{id}", s.handleThumb)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func (s *Server) handleThumb(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !s.takeToken() {
		w.Header().Set("Retry-After", strconv.Itoa(s.retryAfter))
		w.WriteHeader(http.StatusTooManyRequests)
		s.logger.Debug("rate limited", "id", id)
		return
	}

	if s.countRequest(id) <= s.warmup {
		w.WriteHeader(http.StatusAccepted)
		s.logger.Debug("still rendering", "id", id)
		return
	}

	img, err := renderThumb(id)
	if err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(img)
	s.logger.Debug("served", "id", id, "bytes", len(img))
}

// takeToken implements a coarse one-second-window token bucket
func (s *Server) takeToken() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if now.Sub(s.refill) >= time.Second {
		s.tokens = s.rate
		s.refill = now
	}
	if s.tokens <= 0 {
		return false
	}
	s.tokens--
	return true
}

func (s *Server) countRequest(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[id]++
	return s.seen[id]
}

// renderThumb produces a deterministic solid-color PNG per ID so the same
// thumbnail always looks the same across runs
func renderThumb(id string) ([]byte, error) {
	h := fnv.New32a()
	h.Write([]byte(id))
	sum := h.Sum32()

	fill := color.RGBA{
		R: uint8(sum),
		G: uint8(sum >> 8),
		B: uint8(sum >> 16),
		A: 255,
	}

	img := image.NewRGBA(image.Rect(0, 0, ThumbWidth, ThumbHeight))
	for y := 0; y < ThumbHeight; y++ {
		for x := 0; x < ThumbWidth; x++ {
			img.Set(x, y, fill)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %v", err)
	}
	return buf.Bytes(), nil
}
