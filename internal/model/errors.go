package model

import "errors"

// Terminal acquisition outcomes surfaced to the UI. Transient conditions
// (network failures, 202 still-generating, 429 rate limiting) are retried
// inside the pipeline and never appear here; cancellation is silent by
// contract and has no error value at all.
var (
	// ErrExhausted means the retry budget was consumed without a thumbnail
	ErrExhausted = errors.New("retry budget exhausted")

	// ErrInvalidResource means the resource URL was malformed or the server
	// answered with a status outside the retry contract
	ErrInvalidResource = errors.New("invalid thumbnail resource")
)
