package layout

// Package layout implements the packed-grid (masonry) placement engine. Items
// are assigned absolute positions by greedy shortest-column placement: each
// item in sequence goes to the currently shortest column, tie-broken by lowest
// column index so results are deterministic. The engine is pure arithmetic
// over already-resolved inputs; it performs no I/O and raises no errors.
