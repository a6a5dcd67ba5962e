package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/mediawall/mediawall/internal/model"
)

// Timeout constants
const (
	DefaultResolveTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// YouTube thumbnail template; mqdefault is served at 16:9
const (
	ThumbURLTemplate = "https://i.ytimg.com/vi/%s/mqdefault.jpg"

	ThumbAspectW = 16
	ThumbAspectH = 9
)

// PlaylistSource resolves a YouTube playlist URL into gallery media items
// using the yt-dlp library
type PlaylistSource struct {
	timeout time.Duration
}

// NewPlaylistSource creates a new playlist source
func NewPlaylistSource() *PlaylistSource {
	return &PlaylistSource{
		timeout: DefaultResolveTimeout,
	}
}

// SetTimeout sets the timeout for resolve operations
func (p *PlaylistSource) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// Resolve fetches the playlist's entries and maps each video to a MediaItem
// carrying its poster thumbnail URL and declared aspect ratio
func (p *PlaylistSource) Resolve(ctx context.Context, playlistURL string) ([]*model.MediaItem, error) {
	if !IsPlaylistURL(playlistURL) {
		return nil, fmt.Errorf("invalid playlist URL: %s", playlistURL)
	}

	playlistID := extractPlaylistID(playlistURL)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", playlistURL)
	}

	ctx, cancelFn := context.WithTimeout(ctx, p.timeout)
	defer cancelFn()

	d := ytdlp.New()
	entries, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %v", err)
	}

	items := make([]*model.MediaItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, itemFromVideo(entry.VideoID, entry.Title))
	}
	return items, nil
}

// IsPlaylistURL checks if the URL looks like a YouTube playlist URL
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// itemFromVideo maps one playlist entry to a gallery media item
func itemFromVideo(videoID, title string) *model.MediaItem {
	return &model.MediaItem{
		ID:       videoID,
		Title:    title,
		Kind:     model.MediaKindVideo,
		ThumbURL: fmt.Sprintf(ThumbURLTemplate, videoID),
		AspectW:  ThumbAspectW,
		AspectH:  ThumbAspectH,
	}
}

// extractPlaylistID extracts the playlist ID from various URL formats
func extractPlaylistID(url string) string {
	if !strings.Contains(url, PlaylistParam) {
		return ""
	}
	parts := strings.Split(url, PlaylistParam)
	if len(parts) < 2 {
		return ""
	}
	playlistPart := parts[1]
	if strings.Contains(playlistPart, ParamSeparator) {
		playlistPart = strings.Split(playlistPart, ParamSeparator)[0]
	}
	return playlistPart
}
