package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/mediawall/mediawall/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func()

	// UI components
	maxParallelEntry *widget.Entry
	retryBudgetEntry *widget.Entry
	gridGapEntry     *widget.Entry
	bufferEntry      *widget.Entry
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after a
// confirmed save so the caller can rebuild the grid.
func NewSettingsDialog(settings *config.Settings, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
		onSaved:  onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder("1-16")

	sd.retryBudgetEntry = widget.NewEntry()
	sd.retryBudgetEntry.SetPlaceHolder("1-50")

	sd.gridGapEntry = widget.NewEntry()
	sd.gridGapEntry.SetPlaceHolder("0-64")

	sd.bufferEntry = widget.NewEntry()
	sd.bufferEntry.SetPlaceHolder("1-10")

	form := container.NewVBox(
		widget.NewLabel("Acquisition"),
		widget.NewSeparator(),

		widget.NewLabel("Parallel thumbnail fetches:"),
		sd.maxParallelEntry,

		widget.NewLabel("Retry budget per thumbnail:"),
		sd.retryBudgetEntry,

		widget.NewSeparator(),
		widget.NewLabel("Grid"),
		widget.NewSeparator(),

		widget.NewLabel("Cell gap (px):"),
		sd.gridGapEntry,

		widget.NewLabel("Scroll buffer (viewports):"),
		sd.bufferEntry,
	)

	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(420, 380))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelFetches()))
	sd.retryBudgetEntry.SetText(strconv.Itoa(sd.settings.GetRetryBudget()))
	sd.gridGapEntry.SetText(strconv.Itoa(sd.settings.GetGridGap()))
	sd.bufferEntry.SetText(strconv.Itoa(sd.settings.GetWindowBuffer()))
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if v, err := strconv.Atoi(sd.maxParallelEntry.Text); err == nil {
		sd.settings.SetMaxParallelFetches(v)
	}
	if v, err := strconv.Atoi(sd.retryBudgetEntry.Text); err == nil {
		sd.settings.SetRetryBudget(v)
	}
	if v, err := strconv.Atoi(sd.gridGapEntry.Text); err == nil {
		sd.settings.SetGridGap(v)
	}
	if v, err := strconv.Atoi(sd.bufferEntry.Text); err == nil {
		sd.settings.SetWindowBuffer(v)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
