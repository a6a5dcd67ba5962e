package window

// Package window implements virtual windowing for large collections: only the
// index range intersecting the viewport (plus a buffer) is materialized on the
// rendering surface. Rendering is two-phase: unmeasured in-range items are
// first rendered off-surface and run through the packing engine to obtain
// real positions, then the visible set is diffed against the previous range.
// All methods must be called from the single UI goroutine that owns the
// rendering surface.
