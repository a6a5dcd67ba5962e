package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"

	"github.com/mediawall/mediawall/internal/cancel"
	"github.com/mediawall/mediawall/internal/platform"
	"github.com/mediawall/mediawall/internal/thumbs"
	"github.com/mediawall/mediawall/internal/ui"
)

func main() {
	logger := log.New(os.Stderr)

	myApp := app.NewWithID("com.mediawall.mediawall")
	myWindow := myApp.NewWindow("Media Wall")
	myWindow.Resize(fyne.NewSize(1100, 720))

	registry := cancel.NewRegistry()
	acquirer := thumbs.NewService(thumbs.Config{}, platform.NewHTTPFetcher(), registry, logger)

	ui.NewRootUI(myWindow, myApp, acquirer, platform.NewPlaylistSource(), logger)

	myWindow.ShowAndRun()
}
