package config

import (
	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyPlaylistURL     = "playlist_url"
	KeyMaxParallel     = "max_parallel_fetches"
	KeyRetryBudget     = "retry_budget"
	KeyGridGap         = "grid_gap"
	KeyWindowBuffer    = "window_buffer"
	KeyWindowThreshold = "window_threshold"
)

// Default values
const (
	DefaultMaxParallel     = 6
	DefaultRetryBudget     = 10
	DefaultGridGap         = 16
	DefaultWindowBuffer    = 3
	DefaultWindowThreshold = 100
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetPlaylistURL returns the last playlist URL the user loaded
func (s *Settings) GetPlaylistURL() string {
	return s.app.Preferences().String(KeyPlaylistURL)
}

// SetPlaylistURL remembers the playlist URL between sessions
func (s *Settings) SetPlaylistURL(url string) {
	s.app.Preferences().SetString(KeyPlaylistURL, url)
}

// GetMaxParallelFetches returns the maximum number of concurrent thumbnail fetches
func (s *Settings) GetMaxParallelFetches() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelFetches(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelFetches sets the maximum number of concurrent thumbnail fetches
func (s *Settings) SetMaxParallelFetches(count int) {
	if count < 1 {
		count = 1
	}
	if count > 16 {
		count = 16
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetRetryBudget returns the per-thumbnail attempt budget
func (s *Settings) GetRetryBudget() int {
	value := s.app.Preferences().Int(KeyRetryBudget)
	if value <= 0 {
		s.SetRetryBudget(DefaultRetryBudget)
		return DefaultRetryBudget
	}
	return value
}

// SetRetryBudget sets the per-thumbnail attempt budget
func (s *Settings) SetRetryBudget(budget int) {
	if budget < 1 {
		budget = 1
	}
	if budget > 50 {
		budget = 50
	}
	s.app.Preferences().SetInt(KeyRetryBudget, budget)
}

// GetGridGap returns the spacing between grid cells in pixels
func (s *Settings) GetGridGap() int {
	value := s.app.Preferences().Int(KeyGridGap)
	if value <= 0 {
		s.SetGridGap(DefaultGridGap)
		return DefaultGridGap
	}
	return value
}

// SetGridGap sets the spacing between grid cells
func (s *Settings) SetGridGap(gap int) {
	if gap < 0 {
		gap = 0
	}
	if gap > 64 {
		gap = 64
	}
	s.app.Preferences().SetInt(KeyGridGap, gap)
}

// GetWindowBuffer returns the number of extra viewport heights kept rendered
// above and below the visible region
func (s *Settings) GetWindowBuffer() int {
	value := s.app.Preferences().Int(KeyWindowBuffer)
	if value <= 0 {
		s.SetWindowBuffer(DefaultWindowBuffer)
		return DefaultWindowBuffer
	}
	return value
}

// SetWindowBuffer sets the windowing buffer multiplier
func (s *Settings) SetWindowBuffer(buffer int) {
	if buffer < 1 {
		buffer = 1
	}
	if buffer > 10 {
		buffer = 10
	}
	s.app.Preferences().SetInt(KeyWindowBuffer, buffer)
}

// GetWindowThreshold returns the item count above which the gallery switches
// to windowed rendering
func (s *Settings) GetWindowThreshold() int {
	value := s.app.Preferences().Int(KeyWindowThreshold)
	if value <= 0 {
		s.SetWindowThreshold(DefaultWindowThreshold)
		return DefaultWindowThreshold
	}
	return value
}

// SetWindowThreshold sets the windowing threshold
func (s *Settings) SetWindowThreshold(threshold int) {
	if threshold < 1 {
		threshold = 1
	}
	s.app.Preferences().SetInt(KeyWindowThreshold, threshold)
}
