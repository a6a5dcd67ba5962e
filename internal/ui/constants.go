package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconClose    = "×"
	IconError    = "❌"
	IconVideo    = "🎬"
	IconImage    = "🖼"
)

// Text fragments
const (
	DashPlaceholder = "—"
)

// Cell sizing
const (
	// CellFallbackHeight is used for a cell whose media declares no aspect
	// ratio and could not be measured
	CellFallbackHeight float32 = 300
)

// Relayout signal coalescing: a storm of resize/scroll events collapses to at
// most one layout pass per interval, with one follow-up pass for signals that
// arrived while a pass was running
const (
	RelayoutCoalesce = 150 * time.Millisecond
)

// URLs / parsing
const (
	PlaylistQueryParam = "list="
)
