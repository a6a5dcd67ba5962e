package model

import (
	"strings"
)

// MediaKind distinguishes still images from videos in the gallery
type MediaKind string

const (
	// MediaKindImage is a still image item
	MediaKindImage MediaKind = "image"

	// MediaKindVideo is a video item rendered via its poster thumbnail
	MediaKindVideo MediaKind = "video"
)

// MediaItem represents a single entry in the gallery's backing collection.
// Items carry a thumbnail URL and, when the source provides one, a declared
// aspect ratio so the grid can size the cell before the pixels arrive.
type MediaItem struct {
	ID       string
	Title    string
	Kind     MediaKind
	ThumbURL string

	// Declared aspect ratio (width:height) as reported by the source.
	// Both zero when unknown.
	AspectW int
	AspectH int

	Duration string // video duration, empty for images
}

// HasDeclaredAspect returns true when the source supplied a usable
// width:height ratio for this item
func (mi *MediaItem) HasDeclaredAspect() bool {
	return mi.AspectW > 0 && mi.AspectH > 0
}

// AspectRatio returns height/width of the declared aspect, or 0 when unknown
func (mi *MediaItem) AspectRatio() float64 {
	if !mi.HasDeclaredAspect() {
		return 0
	}
	return float64(mi.AspectH) / float64(mi.AspectW)
}

// GetDisplayTitle returns the title, falling back to the thumbnail URL's last
// path segment, then the item ID
func (mi *MediaItem) GetDisplayTitle() string {
	if mi.Title != "" && !strings.HasPrefix(mi.Title, "http") {
		return mi.Title
	}

	if mi.ThumbURL != "" {
		parts := strings.FieldsFunc(mi.ThumbURL, func(r rune) bool {
			return r == '/'
		})
		if len(parts) > 0 {
			name := parts[len(parts)-1]
			if idx := strings.LastIndex(name, "."); idx > 0 {
				name = name[:idx]
			}
			if name != "" {
				return name
			}
		}
	}

	return mi.ID
}
