package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"

	"github.com/mediawall/mediawall/internal/cancel"
	"github.com/mediawall/mediawall/internal/config"
	"github.com/mediawall/mediawall/internal/platform"
	"github.com/mediawall/mediawall/internal/thumbs"
	"github.com/mediawall/mediawall/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.mediawall.mediawall"
	AppName = "Media Wall"

	WindowWidth  = 1100
	WindowHeight = 720
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.InfoLevel,
	})
	logger.Info("starting", "app", AppName, "version", version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewGalleryTheme())

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Startup overrides from a local TOML profile, if present
	settings := config.NewSettings(myApp)
	profile, err := config.LoadProfile(config.ProfileFilename)
	if err != nil {
		logger.Warn("ignoring config profile", "err", err)
	} else {
		profile.ApplyTo(settings)
	}

	// Initialize services
	registry := cancel.NewRegistry()
	fetcher := platform.NewHTTPFetcher()
	acquirer := thumbs.NewService(thumbs.Config{
		Concurrency: settings.GetMaxParallelFetches(),
		RetryBudget: settings.GetRetryBudget(),
	}, fetcher, registry, logger)
	source := platform.NewPlaylistSource()

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, acquirer, source, logger)

	// Show and run
	myWindow.ShowAndRun()
}
