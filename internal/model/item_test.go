package model

import "testing"

func TestMediaItem_AspectRatio(t *testing.T) {
	tests := []struct {
		aspectW  int
		aspectH  int
		expected float64
	}{
		{16, 9, 0.5625},
		{1, 1, 1.0},
		{4, 3, 0.75},
		{0, 0, 0},
		{100, 0, 0},
		{0, 100, 0},
	}

	for _, test := range tests {
		item := &MediaItem{AspectW: test.aspectW, AspectH: test.aspectH}
		result := item.AspectRatio()
		if result != test.expected {
			t.Errorf("AspectRatio() with %d:%d = %f, expected %f",
				test.aspectW, test.aspectH, result, test.expected)
		}
	}
}

func TestMediaItem_HasDeclaredAspect(t *testing.T) {
	item := &MediaItem{AspectW: 16, AspectH: 9}
	if !item.HasDeclaredAspect() {
		t.Error("Expected HasDeclaredAspect to be true for 16:9")
	}

	item = &MediaItem{}
	if item.HasDeclaredAspect() {
		t.Error("Expected HasDeclaredAspect to be false for unset aspect")
	}
}

func TestMediaItem_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		title    string
		thumbURL string
		id       string
		expected string
	}{
		{"Sunset", "https://example.com/t/abc.jpg", "item-1", "Sunset"},
		{"", "https://example.com/t/abc.jpg", "item-1", "abc"},
		{"", "", "item-1", "item-1"},
		{"http://not-a-title", "https://example.com/t/xyz.jpg", "item-2", "xyz"},
	}

	for _, test := range tests {
		item := &MediaItem{ID: test.id, Title: test.title, ThumbURL: test.thumbURL}
		result := item.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() with title='%s', url='%s' = '%s', expected '%s'",
				test.title, test.thumbURL, result, test.expected)
		}
	}
}

func TestThumbTask_Elapsed(t *testing.T) {
	task := &ThumbTask{}
	if task.Elapsed() != 0 {
		t.Error("Expected zero elapsed time for task never enqueued")
	}
}
