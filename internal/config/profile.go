package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ProfileFilename is looked up in the working directory at startup
const ProfileFilename = "mediawall.toml"

// Profile holds startup overrides read from a TOML file. Zero-valued fields
// leave the stored preference untouched.
type Profile struct {
	PlaylistURL     string `toml:"playlist_url"`
	MaxParallel     int    `toml:"max_parallel_fetches"`
	RetryBudget     int    `toml:"retry_budget"`
	GridGap         int    `toml:"grid_gap"`
	WindowBuffer    int    `toml:"window_buffer"`
	WindowThreshold int    `toml:"window_threshold"`
}

// LoadProfile reads a profile from path. A missing file is not an error and
// yields an empty profile.
func LoadProfile(path string) (*Profile, error) {
	profile := &Profile{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return profile, nil
		}
		return nil, fmt.Errorf("failed to read profile: %v", err)
	}

	if err := toml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %v", err)
	}
	return profile, nil
}

// ApplyTo writes the profile's set fields into the settings store
func (p *Profile) ApplyTo(settings *Settings) {
	if p.PlaylistURL != "" {
		settings.SetPlaylistURL(p.PlaylistURL)
	}
	if p.MaxParallel > 0 {
		settings.SetMaxParallelFetches(p.MaxParallel)
	}
	if p.RetryBudget > 0 {
		settings.SetRetryBudget(p.RetryBudget)
	}
	if p.GridGap > 0 {
		settings.SetGridGap(p.GridGap)
	}
	if p.WindowBuffer > 0 {
		settings.SetWindowBuffer(p.WindowBuffer)
	}
	if p.WindowThreshold > 0 {
		settings.SetWindowThreshold(p.WindowThreshold)
	}
}
