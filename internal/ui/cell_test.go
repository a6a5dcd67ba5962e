package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/mediawall/mediawall/internal/model"
)

func TestThumbCell_AttachedLifecycle(t *testing.T) {
	test.NewApp()

	cell := NewThumbCell(&model.MediaItem{ID: "v1", Title: "First"})

	if cell.Attached() {
		t.Error("New cell should start detached")
	}

	cell.SetAttached(true)
	if !cell.Attached() {
		t.Error("Cell should report attached after materialization")
	}

	cell.SetAttached(false)
	if cell.Attached() {
		t.Error("Cell should report detached after discard")
	}
}

func TestThumbCell_EnqueueOnce(t *testing.T) {
	test.NewApp()

	cell := NewThumbCell(&model.MediaItem{ID: "v1"})

	if !cell.MarkEnqueued() {
		t.Error("First MarkEnqueued should succeed")
	}
	if cell.MarkEnqueued() {
		t.Error("Second MarkEnqueued should report already enqueued")
	}
}

func TestThumbCell_HeightFor(t *testing.T) {
	test.NewApp()

	withAspect := NewThumbCell(&model.MediaItem{ID: "a", AspectW: 16, AspectH: 9})
	if h := withAspect.HeightFor(320); h != 180 {
		t.Errorf("16:9 cell at width 320: height = %v, expected 180", h)
	}

	noAspect := NewThumbCell(&model.MediaItem{ID: "b"})
	if h := noAspect.HeightFor(320); h != CellFallbackHeight {
		t.Errorf("Aspect-less cell: height = %v, expected fallback %v", h, CellFallbackHeight)
	}
}

func TestKindIcon(t *testing.T) {
	if kindIcon(&model.MediaItem{Kind: model.MediaKindImage}) != IconImage {
		t.Error("Image media should get the image glyph")
	}
	if kindIcon(&model.MediaItem{Kind: model.MediaKindVideo}) != IconVideo {
		t.Error("Video media should get the video glyph")
	}
	if kindIcon(nil) != IconVideo {
		t.Error("Unknown media should default to the video glyph")
	}
}
