package window

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/mediawall/mediawall/internal/layout"
	"github.com/mediawall/mediawall/internal/model"
)

// Default windowing parameters
const (
	// DefaultThreshold is the item count above which windowing engages;
	// smaller collections are materialized in full
	DefaultThreshold = 100

	// DefaultBuffer is the overscan, in estimated item heights, added above
	// and below the viewport
	DefaultBuffer = 3

	// DefaultEstimatedHeight seeds the running height estimate before any
	// item has been measured
	DefaultEstimatedHeight float32 = 300
)

// Surface is the rendering surface the window materializes onto. Off-surface
// measurement must have no visible effect and must not make nodes interactive.
type Surface interface {
	// MeasureHeights renders the items off-surface at the given cell width
	// and returns their rendered heights in order. A zero height means the
	// item could not be measured; the packing engine substitutes a fallback.
	MeasureHeights(items []*model.MediaItem, cellWidth float32) []float32

	// Materialize places the node for an item at an absolute position
	Materialize(index int, pos layout.Placement)

	// Discard removes the node for an item that left the window
	Discard(index int)

	// SetContentHeight publishes the total scrollable extent
	SetContentHeight(height float32)
}

// Config carries the injectable windowing parameters
type Config struct {
	Threshold       int
	Buffer          int
	EstimatedHeight float32
}

// VirtualWindow tracks the backing item set, the measurement cache, and the
// currently materialized index range [start, end)
type VirtualWindow struct {
	cfg     Config
	engine  *layout.Engine
	surface Surface
	logger  *log.Logger

	items []*model.MediaItem

	// cache maps item index to its absolute placement. Append-only except
	// via Invalidate; it is the source of truth for the scrollable extent.
	cache map[int]layout.Placement

	estimate    float32 // running mean of measured heights
	measuredSum float64
	measuredN   int

	// dirty is set when the cache was invalidated while nodes are on the
	// surface; the next materialize pass re-places every in-range node so
	// the surface converges with the rebuilt cache
	dirty bool

	width          float32
	scrollTop      float32
	viewportHeight float32

	start int
	end   int
}

// New creates a virtual window over the given surface. A nil logger discards
// all output.
func New(cfg Config, engine *layout.Engine, surface Surface, logger *log.Logger) *VirtualWindow {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultBuffer
	}
	if cfg.EstimatedHeight <= 0 {
		cfg.EstimatedHeight = DefaultEstimatedHeight
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &VirtualWindow{
		cfg:      cfg,
		engine:   engine,
		surface:  surface,
		logger:   logger,
		cache:    make(map[int]layout.Placement),
		estimate: cfg.EstimatedHeight,
	}
}

// SetItems replaces the full backing set, e.g. on a new browse result page.
// All nodes are discarded and the measurement cache is rebuilt lazily.
func (w *VirtualWindow) SetItems(items []*model.MediaItem) {
	w.discardRange(w.start, w.end)
	w.start, w.end = 0, 0
	w.items = items
	w.Invalidate()
	w.logger.Debug("window items replaced", "count", len(items))
}

// Items returns the current backing set
func (w *VirtualWindow) Items() []*model.MediaItem {
	return w.items
}

// Active reports whether windowing is engaged for the current item count
func (w *VirtualWindow) Active() bool {
	return len(w.items) > w.cfg.Threshold
}

// Range returns the currently materialized index range [start, end)
func (w *VirtualWindow) Range() (start, end int) {
	return w.start, w.end
}

// Extent returns the total scrollable height: the sum of cached heights with
// unmeasured items counted at the running estimate
func (w *VirtualWindow) Extent() float32 {
	var total float32
	for i := range w.items {
		total += w.heightOf(i)
	}
	return total
}

// Invalidate drops the measurement cache and resets the height estimate, used
// when the container width (and therefore every cell geometry) changed
func (w *VirtualWindow) Invalidate() {
	w.cache = make(map[int]layout.Placement)
	w.estimate = w.cfg.EstimatedHeight
	w.measuredSum = 0
	w.measuredN = 0
	w.dirty = true
}

// SetWidth records a new container width. Crossing to a different cell
// geometry invalidates the cache; the next Refresh re-measures.
func (w *VirtualWindow) SetWidth(width float32) {
	if width == w.width {
		return
	}
	w.width = width
	w.Invalidate()
	w.logger.Debug("window width changed", "width", width)
}

// Refresh runs the two-phase render for the given scroll position: visible
// range calculation, measurement of uncached in-range items, then the
// materialize/discard diff against the previous range.
func (w *VirtualWindow) Refresh(scrollTop, viewportHeight float32) {
	w.scrollTop = scrollTop
	w.viewportHeight = viewportHeight

	if len(w.items) == 0 || w.width <= 0 {
		w.discardRange(w.start, w.end)
		w.start, w.end = 0, 0
		w.surface.SetContentHeight(0)
		return
	}

	start, end := w.visibleRange(scrollTop, viewportHeight)
	w.measureRange(start, end)
	w.materialize(start, end)
	w.surface.SetContentHeight(w.Extent())
}

// visibleRange walks the item list accumulating heights to find the first
// index whose bottom edge exceeds scrollTop-buffer and the first index whose
// top exceeds the viewport bottom plus buffer
func (w *VirtualWindow) visibleRange(scrollTop, viewportHeight float32) (int, int) {
	buffer := float32(w.cfg.Buffer) * w.estimate
	top := scrollTop - buffer
	bottom := scrollTop + viewportHeight + buffer

	start := -1
	end := len(w.items)

	var y float32
	for i := range w.items {
		h := w.heightOf(i)
		if start < 0 && y+h > top {
			start = i
		}
		if y > bottom {
			end = i
			break
		}
		y += h
	}
	if start < 0 {
		start = len(w.items)
	}
	return start, end
}

// measureRange measures every in-range item that has no cache entry yet.
// Contiguous uncached runs are measured as one batch: the batch is rendered
// off-surface, packed by the layout engine, and committed at the accumulated
// top of its first index.
func (w *VirtualWindow) measureRange(start, end int) {
	i := start
	for i < end {
		if _, ok := w.cache[i]; ok {
			i++
			continue
		}

		// Extend the batch over the uncached run
		j := i
		for j < end {
			if _, ok := w.cache[j]; ok {
				break
			}
			j++
		}
		w.measureBatch(i, j)
		i = j
	}
}

// measureBatch measures and places items [first, last)
func (w *VirtualWindow) measureBatch(first, last int) {
	batch := w.items[first:last]
	cellWidth := w.engine.ItemWidth(w.width)
	heights := w.surface.MeasureHeights(batch, cellWidth)

	layoutItems := make([]*layout.Item, len(batch))
	for k, media := range batch {
		item := &layout.Item{Media: media}
		if k < len(heights) {
			item.MeasuredHeight = heights[k]
		}
		layoutItems[k] = item
	}

	// Pack just this batch; its origin is the accumulated top of the first
	// index so batches stack without overlap
	w.engine.RelayoutAll(w.width, layoutItems)
	origin := w.accumulatedTop(first)

	for k, item := range layoutItems {
		pos := item.Placement
		pos.Y += origin
		w.cache[first+k] = pos

		w.measuredSum += float64(pos.Height)
		w.measuredN++
	}

	// Self-correcting estimate: mean of all measured heights so far
	w.estimate = float32(w.measuredSum / float64(w.measuredN))

	w.logger.Debug("measured batch",
		"first", first, "count", len(batch), "estimate", w.estimate)
}

// materialize diffs the new range against the previous one, discarding nodes
// that fell out and placing nodes that came in
func (w *VirtualWindow) materialize(start, end int) {
	// Discard indices of the old range not covered by the new one
	for i := w.start; i < w.end; i++ {
		if i < start || i >= end {
			w.surface.Discard(i)
		}
	}

	// Place newly in-range indices. After an invalidation the nodes still
	// on the surface hold placements from the old geometry, so every
	// in-range index is re-placed, not just the newcomers.
	for i := start; i < end; i++ {
		if !w.dirty && i >= w.start && i < w.end {
			continue
		}
		w.surface.Materialize(i, w.placementFor(i))
	}

	w.start, w.end = start, end
	w.dirty = false
}

// discardRange removes nodes for every index in [start, end)
func (w *VirtualWindow) discardRange(start, end int) {
	for i := start; i < end; i++ {
		w.surface.Discard(i)
	}
}

// placementFor returns the cached placement, or estimated coordinates for an
// item whose measurement is still pending
func (w *VirtualWindow) placementFor(i int) layout.Placement {
	if pos, ok := w.cache[i]; ok {
		return pos
	}
	return layout.Placement{
		X:      0,
		Y:      w.accumulatedTop(i),
		Width:  w.engine.ItemWidth(w.width),
		Height: w.estimate,
	}
}

// heightOf returns the cached height for an index, else the running estimate
func (w *VirtualWindow) heightOf(i int) float32 {
	if pos, ok := w.cache[i]; ok {
		return pos.Height
	}
	return w.estimate
}

// accumulatedTop returns the sum of heights of all items before index i
func (w *VirtualWindow) accumulatedTop(i int) float32 {
	var y float32
	for k := 0; k < i && k < len(w.items); k++ {
		y += w.heightOf(k)
	}
	return y
}
