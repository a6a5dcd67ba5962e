package ui

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/mediawall/mediawall/internal/config"
	"github.com/mediawall/mediawall/internal/model"
	"github.com/mediawall/mediawall/internal/platform"
	"github.com/mediawall/mediawall/internal/thumbs"
)

// Source resolves a playlist URL into media items
type Source interface {
	Resolve(ctx context.Context, playlistURL string) ([]*model.MediaItem, error)
}

// RootUI represents the main UI structure
type RootUI struct {
	window   fyne.Window
	settings *config.Settings
	source   Source
	acquirer thumbs.Acquirer
	logger   *log.Logger

	urlEntry *widget.Entry
	loadBtn  *widget.Button
	gallery  *GalleryGrid

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, acquirer thumbs.Acquirer, source Source, logger *log.Logger) *RootUI {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	settings := config.NewSettings(app)

	ui := &RootUI{
		window:   window,
		settings: settings,
		source:   source,
		acquirer: acquirer,
		logger:   logger,
	}

	ui.setupUI()
	return ui
}

// Gallery returns the gallery grid
func (ui *RootUI) Gallery() *GalleryGrid {
	return ui.gallery
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Create URL entry
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("Paste a playlist URL")
	ui.urlEntry.Validator = ui.validateURL
	if saved := ui.settings.GetPlaylistURL(); saved != "" {
		ui.urlEntry.SetText(saved)
	}
	// Trigger loading when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onLoadClick()
	}

	// Create load button
	ui.loadBtn = widget.NewButton("Load", ui.onLoadClick)

	// Create settings button
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	topPanel := container.NewBorder(nil, nil, settingsBtn, ui.loadBtn, ui.urlEntry)

	// Create notification panel under URL input (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	topCombined := container.NewVBox(topPanel, ui.notificationContainer)

	// Create gallery grid
	ui.gallery = NewGalleryGrid(GalleryConfig{
		Gap:             float32(ui.settings.GetGridGap()),
		WindowThreshold: ui.settings.GetWindowThreshold(),
		WindowBuffer:    ui.settings.GetWindowBuffer(),
	}, ui.acquirer, ui.logger)
	ui.acquirer.SetUpdateCallback(ui.gallery.OnThumbUpdate)

	content := container.NewBorder(
		topCombined,         // top
		nil,                 // bottom
		nil,                 // left
		nil,                 // right
		ui.gallery.Widget(), // center
	)

	ui.window.SetContent(content)
}

// validateURL validates the entered URL
func (ui *RootUI) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}

	return nil
}

// onLoadClick resolves the entered playlist and swaps the gallery's item set.
// Loading a new playlist aborts acquisition for the previous one first.
func (ui *RootUI) onLoadClick() {
	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		ui.showNotification("Please enter a playlist URL", false)
		return
	}

	if err := ui.validateURL(urlText); err != nil {
		ui.showNotification("Invalid URL: "+err.Error(), false)
		return
	}

	if !strings.Contains(urlText, PlaylistQueryParam) {
		ui.showNotification("Not a playlist URL", false)
		return
	}

	ui.logger.Info("loading playlist", "url", urlText)
	ui.showNotification("Loading playlist…", true)
	ui.loadBtn.Disable()

	// Route change: in-flight thumbnail work for the old set stops silently
	ui.acquirer.AbortAll()

	go func() {
		items, err := ui.source.Resolve(context.Background(), urlText)

		fyne.Do(func() {
			ui.loadBtn.Enable()

			if err != nil {
				ui.logger.Warn("playlist resolve failed", "url", urlText, "err", err)
				ui.showNotification("Failed to load playlist: "+err.Error(), false)
				return
			}

			ui.settings.SetPlaylistURL(urlText)
			ui.gallery.SetItems(items)
			ui.showNotification(fmt.Sprintf("Loaded %d items", len(items)), false)
		})
	}()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window, func() {
		ui.showNotification("Settings saved, reload to apply", false)
	}).Show()
}

// showNotification displays a message in the notification panel under the URL
// input. When spinning is true, a spinner indicates background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	ui.notificationLabel.SetText(message)
	if spinning {
		ui.notificationSpinner.Show()
	} else {
		ui.notificationSpinner.Hide()
	}
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

// Ensure PlaylistSource satisfies Source
var _ Source = (*platform.PlaylistSource)(nil)
