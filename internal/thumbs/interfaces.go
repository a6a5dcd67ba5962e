package thumbs

import (
	"context"
	"time"

	"github.com/mediawall/mediawall/internal/model"
)

// Response is the outcome of one thumbnail request. Statuses of interest are
// 200 (ready), 202 (still generating), 429 (rate limited), and 5xx
// (transient server failure); anything else is treated as invalid.
type Response struct {
	Status     int
	RetryAfter time.Duration // server retry hint, 0 when absent
	Body       []byte
}

// Fetcher issues a single thumbnail request. Implementations must honor ctx
// cancellation and return ctx.Err() when cancelled mid-request.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

// Acquirer defines the interface for the acquisition pipeline
type Acquirer interface {
	SetUpdateCallback(func(*model.ThumbTask))
	EnqueueVisible(node model.NodeRef, url string) *model.ThumbTask
	GetTask(id string) (*model.ThumbTask, bool)
	GetAllTasks() []*model.ThumbTask
	AbortAll()
	ActiveCount() int
	QueueLen() int
}
