// Package ui implements the Fyne interface of the media wall: the root
// window, the windowed gallery grid, and the thumbnail cells it materializes.
package ui
