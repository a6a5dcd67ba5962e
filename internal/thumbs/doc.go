package thumbs

// Package thumbs implements the bounded thumbnail acquisition pipeline. Tasks
// enter a FIFO queue when their cell becomes visible; a dispatcher keeps at
// most Concurrency requests in flight. The server may answer 202 while a
// thumbnail is still being generated (polled at a fixed delay) or 429 when
// rate limited (exponential backoff honoring Retry-After). Cancellation is
// group-scoped through the cancel registry and is always silent: a cancelled
// task never consumes retry budget and never reaches the failure path.
