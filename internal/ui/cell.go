package ui

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/mediawall/mediawall/internal/model"
)

// ThumbCell is one tile of the gallery grid. It renders the media thumbnail
// with the title overlaid along the bottom edge, a neutral placeholder while
// the thumbnail is loading, and a fallback visual when acquisition fails for
// good.
//
// A cell reports whether it is still part of the grid through Attached; the
// acquisition pipeline checks that before and after every request so work for
// scrolled-away cells dies quietly.
type ThumbCell struct {
	widget.BaseWidget

	media *model.MediaItem

	mu       sync.Mutex
	attached bool
	enqueued bool

	image       *canvas.Image
	placeholder *canvas.Rectangle
	fallback    *canvas.Rectangle
	kindLabel   *widget.Label
	titleLabel  *widget.Label
}

// NewThumbCell creates a cell for one media item
func NewThumbCell(media *model.MediaItem) *ThumbCell {
	c := &ThumbCell{media: media}
	c.ExtendBaseWidget(c)
	c.createUI()
	return c
}

// Media returns the cell's media item
func (c *ThumbCell) Media() *model.MediaItem {
	return c.media
}

// Attached reports whether the cell is currently part of the grid
func (c *ThumbCell) Attached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attached
}

// SetAttached marks the cell as materialized or discarded
func (c *ThumbCell) SetAttached(attached bool) {
	c.mu.Lock()
	c.attached = attached
	c.mu.Unlock()
}

// MarkEnqueued records that an acquisition task was issued for this cell.
// Returns false if one was already issued, so a cell never fetches twice.
func (c *ThumbCell) MarkEnqueued() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enqueued {
		return false
	}
	c.enqueued = true
	return true
}

// SetImageData displays the fetched thumbnail bytes
func (c *ThumbCell) SetImageData(data []byte) {
	if len(data) == 0 {
		c.ShowFallback()
		return
	}
	name := "thumb"
	if c.media != nil {
		name = c.media.ID
	}
	c.image.Resource = fyne.NewStaticResource(name, data)
	c.placeholder.Hide()
	c.fallback.Hide()
	c.image.Show()
	c.Refresh()
}

// ShowFallback switches the cell to the failed-acquisition visual: a dimmed
// tile with the media kind icon and the title still readable
func (c *ThumbCell) ShowFallback() {
	c.image.Hide()
	c.placeholder.Hide()
	c.fallback.Show()
	c.kindLabel.Show()
	c.Refresh()
}

// HeightFor returns the cell height at the given width: the declared aspect
// ratio when the media carries one, otherwise the fixed fallback height
func (c *ThumbCell) HeightFor(cellWidth float32) float32 {
	if c.media != nil && c.media.HasDeclaredAspect() {
		return cellWidth * float32(c.media.AspectRatio())
	}
	return CellFallbackHeight
}

// createUI creates the cell's canvas objects
func (c *ThumbCell) createUI() {
	c.image = &canvas.Image{FillMode: canvas.ImageFillContain}
	c.image.ScaleMode = canvas.ImageScaleFastest
	c.image.Hide()

	c.placeholder = canvas.NewRectangle(color.RGBA{R: 55, G: 55, B: 60, A: 255})

	c.fallback = canvas.NewRectangle(color.RGBA{R: 40, G: 40, B: 44, A: 255})
	c.fallback.Hide()

	c.kindLabel = widget.NewLabel(kindIcon(c.media))
	c.kindLabel.Alignment = fyne.TextAlignCenter
	c.kindLabel.Hide()

	title := DashPlaceholder
	if c.media != nil {
		title = c.media.GetDisplayTitle()
	}
	c.titleLabel = widget.NewLabel(title)
	c.titleLabel.Truncation = fyne.TextTruncateEllipsis
	c.titleLabel.Alignment = fyne.TextAlignLeading
}

// kindIcon picks the fallback glyph for a media kind
func kindIcon(media *model.MediaItem) string {
	if media != nil && media.Kind == model.MediaKindImage {
		return IconImage
	}
	return IconVideo
}

// CreateRenderer creates the widget renderer
func (c *ThumbCell) CreateRenderer() fyne.WidgetRenderer {
	// Title overlaid along the bottom edge so the cell height stays the
	// thumbnail height
	layers := container.NewStack(c.placeholder, c.fallback, c.image, container.NewCenter(c.kindLabel))
	overlay := container.NewBorder(nil, c.titleLabel, nil, nil)
	return widget.NewSimpleRenderer(container.NewStack(layers, overlay))
}
