package layout

import (
	"github.com/mediawall/mediawall/internal/model"
)

// Default geometry values
const (
	DefaultGap            float32 = 16
	DefaultFallbackHeight float32 = 300
)

// Breakpoint maps a minimum container width to a column count
type Breakpoint struct {
	MinWidth float32
	Columns  int
}

// DefaultBreakpoints is a monotonic step function: wider containers never get
// fewer columns
var DefaultBreakpoints = []Breakpoint{
	{MinWidth: 0, Columns: 1},
	{MinWidth: 480, Columns: 2},
	{MinWidth: 768, Columns: 3},
	{MinWidth: 1024, Columns: 4},
	{MinWidth: 1400, Columns: 5},
}

// Config carries the injectable geometry parameters of the engine
type Config struct {
	Gap            float32
	FallbackHeight float32      // used when neither aspect nor measurement is known
	Breakpoints    []Breakpoint // must be sorted by ascending MinWidth
}

// Placement is the absolute position and size assigned to an item
type Placement struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// Bottom returns the Y coordinate of the placement's lower edge
func (p Placement) Bottom() float32 {
	return p.Y + p.Height
}

// Item is one entry of the layout set. The engine writes Placement; the
// measurement phase writes MeasuredHeight.
type Item struct {
	Media          *model.MediaItem
	MeasuredHeight float32
	Placement      Placement
}

// Engine places items into columns and tracks the running column heights.
// Column state is rebuilt whenever the column count changes or a full
// relayout is requested, and mutated incrementally as items are appended.
// The engine is not goroutine-safe; callers serialize relayout passes.
type Engine struct {
	cfg     Config
	columns int
	heights []float32 // current column state, accumulated height+gap per item
}

// NewEngine creates a layout engine, filling unset config values with defaults
func NewEngine(cfg Config) *Engine {
	if cfg.Gap <= 0 {
		cfg.Gap = DefaultGap
	}
	if cfg.FallbackHeight <= 0 {
		cfg.FallbackHeight = DefaultFallbackHeight
	}
	if len(cfg.Breakpoints) == 0 {
		cfg.Breakpoints = DefaultBreakpoints
	}
	return &Engine{cfg: cfg}
}

// ColumnsForWidth returns the column count for a container width via the
// configured breakpoints
func (e *Engine) ColumnsForWidth(width float32) int {
	columns := 1
	for _, bp := range e.cfg.Breakpoints {
		if width >= bp.MinWidth {
			columns = bp.Columns
		}
	}
	return columns
}

// ItemWidth returns the width every cell gets at the given container width
func (e *Engine) ItemWidth(width float32) float32 {
	columns := e.ColumnsForWidth(width)
	return (width - e.cfg.Gap*float32(columns-1)) / float32(columns)
}

// Columns returns the column count of the current state, 0 before any layout
func (e *Engine) Columns() int {
	return e.columns
}

// ColumnHeights returns a copy of the current column state
func (e *Engine) ColumnHeights() []float32 {
	out := make([]float32, len(e.heights))
	copy(out, e.heights)
	return out
}

// ContentHeight returns the total height of the packed grid: the tallest
// column minus its trailing gap. Published per batch, not per item.
func (e *Engine) ContentHeight() float32 {
	var tallest float32
	for _, h := range e.heights {
		if h > tallest {
			tallest = h
		}
	}
	if tallest > 0 {
		tallest -= e.cfg.Gap
	}
	return tallest
}

// RelayoutAll resets the column state for the given container width and
// places every item in sequence order. An empty item list only resets state.
func (e *Engine) RelayoutAll(width float32, items []*Item) {
	e.columns = e.ColumnsForWidth(width)
	e.heights = make([]float32, e.columns)
	e.place(width, items)
}

// RelayoutIncremental places newItems on top of the existing column state.
// It returns false when no prior state exists or the column count for the
// given width has changed; the caller must then run RelayoutAll over the full
// item list instead.
func (e *Engine) RelayoutIncremental(width float32, newItems []*Item) bool {
	if e.heights == nil || e.columns != e.ColumnsForWidth(width) {
		return false
	}
	e.place(width, newItems)
	return true
}

// place runs the greedy shortest-column pass. Placement order is strictly the
// item sequence order; it must not be reordered.
func (e *Engine) place(width float32, items []*Item) {
	if width <= 0 || len(items) == 0 {
		return
	}

	itemWidth := e.ItemWidth(width)

	for _, item := range items {
		col := e.shortestColumn()
		height := e.itemHeight(item, itemWidth)

		item.Placement = Placement{
			X:      float32(col) * (itemWidth + e.cfg.Gap),
			Y:      e.heights[col],
			Width:  itemWidth,
			Height: height,
		}

		e.heights[col] += height + e.cfg.Gap
	}
}

// shortestColumn selects the column with minimum height, tie-broken by lowest
// index for deterministic results
func (e *Engine) shortestColumn() int {
	col := 0
	for i := 1; i < len(e.heights); i++ {
		if e.heights[i] < e.heights[col] {
			col = i
		}
	}
	return col
}

// itemHeight resolves an item's cell height: declared aspect ratio first,
// then the measured rendered height, then the fixed fallback
func (e *Engine) itemHeight(item *Item, itemWidth float32) float32 {
	if item.Media != nil && item.Media.HasDeclaredAspect() {
		return itemWidth * float32(item.Media.AspectRatio())
	}
	if item.MeasuredHeight > 0 {
		return item.MeasuredHeight
	}
	return e.cfg.FallbackHeight
}
