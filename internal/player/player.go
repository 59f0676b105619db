// Package player launches external media players for resolved Streamable
// videos. Every invocation uses exec.Command with an explicit argument slice;
// URLs and titles are never passed through a shell.
package player

import (
	"strings"

	"streamable/internal/media"
)

// Player is the interface for media player implementations.
type Player interface {
	// Play starts playback and blocks until the player exits. It returns the
	// last known playback position in seconds, or 0 when the player cannot
	// report one.
	Play(item *media.Playable, startPos float64) (float64, error)

	// Name returns the player name.
	Name() string

	// Available checks if the player binary exists in PATH.
	Available() bool
}

// New creates a player by name.
func New(name string) Player {
	switch name = strings.ToLower(name); name {
	case "mpv":
		return &MPV{}
	case "vlc":
		return &VLC{}
	case "iina", "celluloid":
		return &Generic{name: name}
	default:
		return &MPV{} // Default to mpv
	}
}

func displayTitle(item *media.Playable) string {
	if item.Title != "" {
		return item.Title
	}
	return item.URL.String()
}
