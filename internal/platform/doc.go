package platform

// Package platform contains external integration glue: the HTTP network layer
// used by the acquisition pipeline and the yt-dlp based playlist source that
// turns a YouTube playlist URL into gallery media items.
