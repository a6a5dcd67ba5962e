package cancel

import (
	"context"
	"sync"
)

// Token is a cancellable handle observable as live or cancelled. A token is
// created by Registry.Next and owned by whichever in-flight operation holds
// it; once cancelled or superseded the registry drops its reference.
type Token struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Cancelled reports whether the token has been cancelled
func (t *Token) Cancelled() bool {
	select {
	case <-t.ctx.Done():
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the token is cancelled
func (t *Token) Done() <-chan struct{} {
	return t.ctx.Done()
}

// Context returns the context backing this token, for handing to network
// requests and timers
func (t *Token) Context() context.Context {
	return t.ctx
}

// Registry maps a named group to its single live cancellation token. Groups
// are created lazily on first use. All methods are safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	groups map[string]*Token
}

// NewRegistry creates an empty cancellation registry
func NewRegistry() *Registry {
	return &Registry{
		groups: make(map[string]*Token),
	}
}

// Next cancels and discards the group's current token, if any, then creates,
// stores, and returns a replacement. The replace-and-cancel step is atomic:
// no moment exists where a group has two live tokens.
func (r *Registry) Next(group string) *Token {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.groups[group]; ok {
		prev.cancel()
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	token := &Token{ctx: ctx, cancel: cancelFn}
	r.groups[group] = token
	return token
}

// Get returns the group's current token without creating one. Returns nil for
// groups that have never been used or whose token was aborted.
func (r *Registry) Get(group string) *Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.groups[group]
}

// Abort cancels the group's current token without issuing a replacement.
// Aborting an unknown group is a no-op.
func (r *Registry) Abort(group string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token, ok := r.groups[group]; ok {
		token.cancel()
		delete(r.groups, group)
	}
}

// AbortMany cancels the current token of each listed group
func (r *Registry) AbortMany(groups ...string) {
	for _, group := range groups {
		r.Abort(group)
	}
}
