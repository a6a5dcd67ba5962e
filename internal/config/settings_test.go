package config

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestPlaylistURL(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetPlaylistURL() != "" {
		t.Error("Playlist URL should start empty")
	}

	url := "https://www.youtube.com/playlist?list=PLtest"
	settings.SetPlaylistURL(url)

	if settings.GetPlaylistURL() != url {
		t.Errorf("Expected playlist URL %s, got %s", url, settings.GetPlaylistURL())
	}
}

func TestMaxParallelFetches(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	maxParallel := settings.GetMaxParallelFetches()
	if maxParallel != DefaultMaxParallel {
		t.Errorf("Expected default max parallel %d, got %d", DefaultMaxParallel, maxParallel)
	}

	// Test setting custom value
	settings.SetMaxParallelFetches(4)
	if settings.GetMaxParallelFetches() != 4 {
		t.Errorf("Expected max parallel 4, got %d", settings.GetMaxParallelFetches())
	}

	// Test boundary values
	settings.SetMaxParallelFetches(0) // Should be clamped to 1
	if settings.GetMaxParallelFetches() != 1 {
		t.Error("Max parallel should be clamped to minimum 1")
	}

	settings.SetMaxParallelFetches(99) // Should be clamped to 16
	if settings.GetMaxParallelFetches() != 16 {
		t.Error("Max parallel should be clamped to maximum 16")
	}
}

func TestRetryBudget(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetRetryBudget() != DefaultRetryBudget {
		t.Errorf("Expected default retry budget %d, got %d", DefaultRetryBudget, settings.GetRetryBudget())
	}

	settings.SetRetryBudget(5)
	if settings.GetRetryBudget() != 5 {
		t.Errorf("Expected retry budget 5, got %d", settings.GetRetryBudget())
	}

	settings.SetRetryBudget(0) // Should be clamped to 1
	if settings.GetRetryBudget() != 1 {
		t.Error("Retry budget should be clamped to minimum 1")
	}
}

func TestGridGap(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetGridGap() != DefaultGridGap {
		t.Errorf("Expected default grid gap %d, got %d", DefaultGridGap, settings.GetGridGap())
	}

	settings.SetGridGap(8)
	if settings.GetGridGap() != 8 {
		t.Errorf("Expected grid gap 8, got %d", settings.GetGridGap())
	}
}

func TestWindowBufferAndThreshold(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetWindowBuffer() != DefaultWindowBuffer {
		t.Errorf("Expected default buffer %d, got %d", DefaultWindowBuffer, settings.GetWindowBuffer())
	}
	if settings.GetWindowThreshold() != DefaultWindowThreshold {
		t.Errorf("Expected default threshold %d, got %d", DefaultWindowThreshold, settings.GetWindowThreshold())
	}

	settings.SetWindowBuffer(5)
	if settings.GetWindowBuffer() != 5 {
		t.Errorf("Expected buffer 5, got %d", settings.GetWindowBuffer())
	}

	settings.SetWindowThreshold(200)
	if settings.GetWindowThreshold() != 200 {
		t.Errorf("Expected threshold 200, got %d", settings.GetWindowThreshold())
	}
}

func TestLoadProfile_MissingFile(t *testing.T) {
	profile, err := LoadProfile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Missing profile file should not error, got %v", err)
	}
	if profile.MaxParallel != 0 {
		t.Error("Missing profile should be empty")
	}
}

func TestLoadProfile_AppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediawall.toml")
	content := `
playlist_url = "https://www.youtube.com/playlist?list=PLprofile"
max_parallel_fetches = 3
grid_gap = 12
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	profile, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("Failed to load profile: %v", err)
	}

	app := test.NewApp()
	settings := NewSettings(app)
	profile.ApplyTo(settings)

	if settings.GetPlaylistURL() != "https://www.youtube.com/playlist?list=PLprofile" {
		t.Errorf("Playlist URL override not applied, got %s", settings.GetPlaylistURL())
	}
	if settings.GetMaxParallelFetches() != 3 {
		t.Errorf("Max parallel override not applied, got %d", settings.GetMaxParallelFetches())
	}
	if settings.GetGridGap() != 12 {
		t.Errorf("Grid gap override not applied, got %d", settings.GetGridGap())
	}
	// Untouched fields fall back to defaults
	if settings.GetRetryBudget() != DefaultRetryBudget {
		t.Errorf("Retry budget should keep its default, got %d", settings.GetRetryBudget())
	}
}

func TestLoadProfile_RejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mediawall.toml")
	if err := os.WriteFile(path, []byte("max_parallel_fetches = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadProfile(path); err == nil {
		t.Error("Expected error for malformed TOML")
	}
}
