package player

import (
	"fmt"
	"os"
	"os/exec"

	"streamable/internal/media"
)

// Generic implements the Player interface for players like iina and celluloid
// that accept mpv-compatible arguments.
type Generic struct {
	name string
}

func (g *Generic) Name() string { return g.name }

func (g *Generic) Available() bool {
	_, err := exec.LookPath(g.name)
	return err == nil
}

// Play launches the generic player. Position tracking is not supported.
func (g *Generic) Play(item *media.Playable, startPos float64) (float64, error) {
	cmd := exec.Command(g.name, genericArgs(item, startPos)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return 0, nil
		}
		return 0, fmt.Errorf("running %s: %w", g.name, err)
	}

	return 0, nil
}

func genericArgs(item *media.Playable, startPos float64) []string {
	// Both iina and celluloid accept mpv-style flags
	args := []string{
		item.URL.String(),
		"--force-media-title=" + displayTitle(item),
	}
	if startPos > 0 {
		args = append(args, fmt.Sprintf("--start=+%.0f", startPos))
	}
	return args
}
