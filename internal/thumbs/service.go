package thumbs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mediawall/mediawall/internal/cancel"
	"github.com/mediawall/mediawall/internal/model"
)

// Default pipeline parameters
const (
	DefaultConcurrency = 6
	DefaultRetryBudget = 10
	DefaultPollDelay   = 2 * time.Second
	DefaultBaseDelay   = 1 * time.Second
	DefaultMaxJitter   = 1 * time.Second
	DefaultGroup       = "thumb"

	TaskIDPrefix = "thumb-"
)

// Config carries the injectable pipeline parameters. Every grid gets its own
// Service instance so two simultaneous views never contend on shared state.
type Config struct {
	Concurrency int           // maximum requests in flight
	RetryBudget int           // attempts before a task fails as exhausted
	PollDelay   time.Duration // fixed delay between 202 polls
	BaseDelay   time.Duration // initial backoff delay for 429
	MaxJitter   time.Duration // random extra added to each backoff step
	Group       string        // cancellation group requests are issued under
}

// withDefaults fills unset config values
func (c Config) withDefaults() Config {
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.RetryBudget <= 0 {
		c.RetryBudget = DefaultRetryBudget
	}
	if c.PollDelay <= 0 {
		c.PollDelay = DefaultPollDelay
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}
	if c.MaxJitter <= 0 {
		c.MaxJitter = DefaultMaxJitter
	}
	if c.Group == "" {
		c.Group = DefaultGroup
	}
	return c
}

// Service handles thumbnail acquisition
type Service struct {
	cfg      Config
	fetcher  Fetcher
	registry *cancel.Registry
	logger   *log.Logger

	tasksMutex  sync.Mutex
	tasks       map[string]*model.ThumbTask
	queue       []*model.ThumbTask // FIFO, dispatch order
	activeCount int
	onUpdate    func(*model.ThumbTask) // callback for UI updates
}

// NewService creates a new acquisition service. A nil logger discards output.
func NewService(cfg Config, fetcher Fetcher, registry *cancel.Registry, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Service{
		cfg:      cfg.withDefaults(),
		fetcher:  fetcher,
		registry: registry,
		logger:   logger,
		tasks:    make(map[string]*model.ThumbTask),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ThumbTask)) {
	s.onUpdate = callback
}

// EnqueueVisible adds an acquisition task for a cell that just became
// visible. A malformed resource URL fails the task immediately without
// entering the queue.
func (s *Service) EnqueueVisible(node model.NodeRef, resourceURL string) *model.ThumbTask {
	task := &model.ThumbTask{
		ID:         generateTaskID(),
		Node:       node,
		URL:        resourceURL,
		Group:      s.cfg.Group,
		Status:     model.TaskStatusQueued,
		EnqueuedAt: time.Now(),
	}

	if err := validateResourceURL(resourceURL); err != nil {
		task.Status = model.TaskStatusFailed
		task.LastError = err.Error()
		task.FinishedAt = time.Now()
		s.tasksMutex.Lock()
		s.tasks[task.ID] = task
		s.tasksMutex.Unlock()
		s.logger.Warn("rejected thumbnail task", "url", resourceURL, "err", err)
		s.notifyUpdate(task)
		return task
	}

	s.tasksMutex.Lock()
	s.tasks[task.ID] = task
	s.queue = append(s.queue, task)
	s.dispatchLocked()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	return task
}

// GetTask returns a task by ID
func (s *Service) GetTask(id string) (*model.ThumbTask, bool) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	task, exists := s.tasks[id]
	return task, exists
}

// GetAllTasks returns all tasks known to the service
func (s *Service) GetAllTasks() []*model.ThumbTask {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	tasks := make([]*model.ThumbTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	return tasks
}

// ActiveCount returns the number of tasks currently holding a request slot
func (s *Service) ActiveCount() int {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	return s.activeCount
}

// QueueLen returns the number of tasks waiting for dispatch
func (s *Service) QueueLen() int {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	return len(s.queue)
}

// AbortAll cancels the service's cancellation group and empties the queue.
// Used on route changes; in-flight tasks observe the dead token at their next
// suspension point and stop silently.
func (s *Service) AbortAll() {
	s.registry.Abort(s.cfg.Group)

	s.tasksMutex.Lock()
	pending := s.queue
	s.queue = nil
	for _, task := range pending {
		task.Status = model.TaskStatusCancelled
		task.FinishedAt = time.Now()
	}
	s.tasksMutex.Unlock()

	for _, task := range pending {
		s.notifyUpdate(task)
	}
	s.logger.Debug("aborted acquisition group", "group", s.cfg.Group, "dropped", len(pending))
}

// dispatchLocked pulls from the queue while request slots are free, skipping
// entries whose node detached or whose group died since enqueue. Callers hold
// tasksMutex.
func (s *Service) dispatchLocked() {
	for s.activeCount < s.cfg.Concurrency && len(s.queue) > 0 {
		task := s.queue[0]
		s.queue = s.queue[1:]

		if task.Node != nil && !task.Node.Attached() {
			task.Status = model.TaskStatusCancelled
			task.FinishedAt = time.Now()
			go s.notifyUpdate(task)
			continue
		}

		token := s.groupToken()
		if token.Cancelled() {
			task.Status = model.TaskStatusCancelled
			task.FinishedAt = time.Now()
			go s.notifyUpdate(task)
			continue
		}

		task.Status = model.TaskStatusActive
		s.activeCount++
		go s.run(task, token)
	}
}

// groupToken returns the group's live token, creating one if the group has
// never been used or was aborted. It never replaces a live token: that would
// cancel requests already in flight.
func (s *Service) groupToken() *cancel.Token {
	if token := s.registry.Get(s.cfg.Group); token != nil {
		return token
	}
	return s.registry.Next(s.cfg.Group)
}

// run drives one task through its retry state machine until a terminal state
func (s *Service) run(task *model.ThumbTask, token *cancel.Token) {
	defer func() {
		s.tasksMutex.Lock()
		s.activeCount--
		s.dispatchLocked()
		s.tasksMutex.Unlock()
	}()

	s.notifyUpdate(task)

	for {
		// Re-validate before issuing the request: cancellation or node
		// removal during a wait must not produce more network traffic
		if token.Cancelled() || !s.nodeAttached(task) {
			s.finishCancelled(task)
			return
		}

		resp, err := s.fetcher.Fetch(token.Context(), task.URL)

		if token.Cancelled() || errors.Is(err, context.Canceled) {
			s.finishCancelled(task)
			return
		}

		var delay time.Duration
		switch {
		case err != nil:
			// Network-level failure: transient, fixed delay
			s.tasksMutex.Lock()
			task.LastError = err.Error()
			s.tasksMutex.Unlock()
			delay = s.cfg.PollDelay

		case resp.Status == 200:
			if !s.nodeAttached(task) {
				s.finishCancelled(task)
				return
			}
			s.tasksMutex.Lock()
			task.Data = resp.Body
			task.Status = model.TaskStatusSucceeded
			task.FinishedAt = time.Now()
			s.tasksMutex.Unlock()
			s.logger.Debug("thumbnail ready", "id", task.ID, "attempts", task.Attempt+1)
			s.notifyUpdate(task)
			return

		case resp.Status == 202:
			// Still generating server-side: poll, don't fail
			delay = s.cfg.PollDelay

		case resp.Status == 429:
			delay = s.nextBackoff(task.Delay, resp.RetryAfter)

		case resp.Status >= 500 && resp.Status <= 599:
			s.tasksMutex.Lock()
			task.LastError = fmt.Sprintf("server error %d", resp.Status)
			s.tasksMutex.Unlock()
			delay = s.cfg.PollDelay

		default:
			// Outside the retry contract: terminal immediately
			s.finishFailed(task, fmt.Errorf("%w: status %d", model.ErrInvalidResource, resp.Status))
			return
		}

		s.tasksMutex.Lock()
		task.Attempt++
		exhausted := task.Attempt >= s.cfg.RetryBudget
		if !exhausted {
			task.Delay = delay
			task.Status = model.TaskStatusRetrying
		}
		s.tasksMutex.Unlock()

		if exhausted {
			s.finishFailed(task, model.ErrExhausted)
			return
		}
		s.notifyUpdate(task)

		select {
		case <-time.After(delay):
		case <-token.Done():
			s.finishCancelled(task)
			return
		}

		// Cancellation racing the retry timer must not flash Active
		if token.Cancelled() || !s.nodeAttached(task) {
			s.finishCancelled(task)
			return
		}

		s.tasksMutex.Lock()
		task.Status = model.TaskStatusActive
		s.tasksMutex.Unlock()
		s.notifyUpdate(task)
	}
}

// nextBackoff doubles the previous delay and adds jitter, unless the server
// supplied a usable retry hint
func (s *Service) nextBackoff(previous, hint time.Duration) time.Duration {
	if hint > 0 {
		return hint
	}
	if previous <= 0 {
		previous = s.cfg.BaseDelay
	}
	return previous*2 + time.Duration(rand.Int63n(int64(s.cfg.MaxJitter)))
}

// finishCancelled transitions a task to Cancelled. Not an error: no attempt
// is consumed and the failure path is never taken.
func (s *Service) finishCancelled(task *model.ThumbTask) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusCancelled
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// finishFailed transitions a task to Failed with a terminal error
func (s *Service) finishFailed(task *model.ThumbTask, err error) {
	if !s.nodeAttached(task) {
		s.finishCancelled(task)
		return
	}
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusFailed
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()
	s.logger.Warn("thumbnail task failed", "id", task.ID, "url", task.URL, "err", err)
	s.notifyUpdate(task)
}

// nodeAttached reports whether the task's cell is still on the surface
func (s *Service) nodeAttached(task *model.ThumbTask) bool {
	return task.Node == nil || task.Node.Attached()
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.ThumbTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// validateResourceURL rejects URLs the fetcher could never satisfy
func validateResourceURL(resourceURL string) error {
	parsed, err := url.ParseRequestURI(resourceURL)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidResource, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", model.ErrInvalidResource, parsed.Scheme)
	}
	return nil
}

// generateTaskID generates a unique task ID using UUID v7 for better
// uniqueness and time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
