package ui

import (
	"image/color"
	"io"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/charmbracelet/log"

	"github.com/mediawall/mediawall/internal/layout"
	"github.com/mediawall/mediawall/internal/model"
	"github.com/mediawall/mediawall/internal/thumbs"
	"github.com/mediawall/mediawall/internal/window"
)

// GalleryGrid is the scrollable masonry grid. It owns the packing engine and
// the virtual window, acts as the window's rendering surface, and drives the
// acquisition pipeline as cells come into view.
type GalleryGrid struct {
	scroll  *container.Scroll
	content *fyne.Container
	spacer  *canvas.Rectangle

	engine   *layout.Engine
	vwindow  *window.VirtualWindow
	acquirer thumbs.Acquirer
	logger   *log.Logger

	cellsMutex sync.Mutex
	cells      map[int]*ThumbCell

	// relayout signal coalescing state
	relayoutMutex   sync.Mutex
	relayoutRunning bool
	relayoutPending bool

	lastWidth float32
}

// GalleryConfig carries the gallery's tunables, usually sourced from settings
type GalleryConfig struct {
	Gap             float32
	WindowThreshold int
	WindowBuffer    int
}

// NewGalleryGrid creates the gallery over an acquisition service. A nil logger
// discards output.
func NewGalleryGrid(cfg GalleryConfig, acquirer thumbs.Acquirer, logger *log.Logger) *GalleryGrid {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	g := &GalleryGrid{
		acquirer: acquirer,
		logger:   logger,
		cells:    make(map[int]*ThumbCell),
	}

	g.engine = layout.NewEngine(layout.Config{
		Gap:            cfg.Gap,
		FallbackHeight: CellFallbackHeight,
	})
	g.vwindow = window.New(window.Config{
		Threshold: cfg.WindowThreshold,
		Buffer:    cfg.WindowBuffer,
	}, g.engine, g, logger)

	g.spacer = canvas.NewRectangle(color.Transparent)
	g.content = container.NewWithoutLayout(g.spacer)
	g.scroll = container.NewVScroll(g.content)
	g.scroll.OnScrolled = func(fyne.Position) {
		g.RequestRelayout()
	}

	return g
}

// Widget returns the gallery's top-level canvas object
func (g *GalleryGrid) Widget() fyne.CanvasObject {
	return g.scroll
}

// SetItems replaces the gallery's backing item set
func (g *GalleryGrid) SetItems(items []*model.MediaItem) {
	g.vwindow.SetItems(items)

	g.cellsMutex.Lock()
	g.cells = make(map[int]*ThumbCell)
	g.cellsMutex.Unlock()

	g.logger.Info("gallery items set", "count", len(items))
	g.RequestRelayout()
}

// Items returns the backing item set
func (g *GalleryGrid) Items() []*model.MediaItem {
	return g.vwindow.Items()
}

// CellAt returns the materialized cell for an index, if any
func (g *GalleryGrid) CellAt(index int) (*ThumbCell, bool) {
	g.cellsMutex.Lock()
	defer g.cellsMutex.Unlock()
	cell, ok := g.cells[index]
	return cell, ok
}

// RequestRelayout signals that geometry became stale (resize, scroll, new
// items). Signals are coalesced: at most one layout pass per interval, and
// signals arriving during a pass trigger exactly one follow-up pass.
func (g *GalleryGrid) RequestRelayout() {
	g.relayoutMutex.Lock()
	if g.relayoutRunning {
		g.relayoutPending = true
		g.relayoutMutex.Unlock()
		return
	}
	g.relayoutRunning = true
	g.relayoutMutex.Unlock()

	go g.relayoutLoop()
}

// relayoutLoop runs layout passes until no pending signal remains, pacing
// follow-up passes by the coalesce interval
func (g *GalleryGrid) relayoutLoop() {
	for {
		g.performRelayout()

		g.relayoutMutex.Lock()
		if !g.relayoutPending {
			g.relayoutRunning = false
			g.relayoutMutex.Unlock()
			return
		}
		g.relayoutPending = false
		g.relayoutMutex.Unlock()

		time.Sleep(RelayoutCoalesce)
	}
}

// performRelayout reads the current scroll geometry and refreshes the window.
// Small collections bypass windowing by refreshing with the full extent as
// the viewport.
func (g *GalleryGrid) performRelayout() {
	fyne.Do(func() {
		size := g.scroll.Size()
		if size.Width <= 0 {
			return
		}

		if size.Width != g.lastWidth {
			g.lastWidth = size.Width
			g.vwindow.SetWidth(size.Width)
		}

		if g.vwindow.Active() {
			g.vwindow.Refresh(g.scroll.Offset.Y, size.Height)
		} else {
			g.vwindow.Refresh(0, g.vwindow.Extent())
		}
	})
}

// MeasureHeights renders the items off-surface at the given cell width and
// returns their heights. Probe cells never join the grid, so they are not
// interactive and issue no acquisition requests.
func (g *GalleryGrid) MeasureHeights(items []*model.MediaItem, cellWidth float32) []float32 {
	heights := make([]float32, len(items))
	for i, media := range items {
		probe := NewThumbCell(media)
		heights[i] = probe.HeightFor(cellWidth)
	}
	return heights
}

// Materialize places the cell for an item at an absolute grid position,
// creating it and enqueuing its thumbnail fetch on first appearance
func (g *GalleryGrid) Materialize(index int, pos layout.Placement) {
	items := g.vwindow.Items()
	if index < 0 || index >= len(items) {
		return
	}
	media := items[index]

	g.cellsMutex.Lock()
	cell, exists := g.cells[index]
	if !exists {
		cell = NewThumbCell(media)
		g.cells[index] = cell
	}
	g.cellsMutex.Unlock()

	cell.SetAttached(true)
	cell.Move(fyne.NewPos(pos.X, pos.Y))
	cell.Resize(fyne.NewSize(pos.Width, pos.Height))

	if !exists {
		g.content.Add(cell)
	}

	// One acquisition per cell lifetime; re-materializing a cached cell
	// must not refetch
	if cell.MarkEnqueued() {
		g.acquirer.EnqueueVisible(cell, media.ThumbURL)
	}
}

// Discard removes the cell for an item that left the window
func (g *GalleryGrid) Discard(index int) {
	g.cellsMutex.Lock()
	cell, ok := g.cells[index]
	if ok {
		delete(g.cells, index)
	}
	g.cellsMutex.Unlock()

	if !ok {
		return
	}
	cell.SetAttached(false)
	g.content.Remove(cell)
}

// SetContentHeight publishes the scrollable extent by resizing the invisible
// spacer that stretches the scroll content
func (g *GalleryGrid) SetContentHeight(height float32) {
	g.spacer.Resize(fyne.NewSize(1, height))
	g.content.Resize(fyne.NewSize(g.lastWidth, height))
	g.content.Refresh()
}

// OnThumbUpdate routes terminal pipeline states to their cells. Wire it as
// the acquisition service's update callback.
func (g *GalleryGrid) OnThumbUpdate(task *model.ThumbTask) {
	cell, ok := task.Node.(*ThumbCell)
	if !ok {
		return
	}

	switch task.Status {
	case model.TaskStatusSucceeded:
		fyne.Do(func() { cell.SetImageData(task.Data) })
	case model.TaskStatusFailed:
		g.logger.Debug("cell fell back", "id", task.ID, "err", task.LastError)
		fyne.Do(func() { cell.ShowFallback() })
	}
}
