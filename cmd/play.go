package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"streamable/internal/config"
	"streamable/internal/history"
	"streamable/internal/media"
	"streamable/internal/player"
	"streamable/internal/provider"
	"streamable/internal/ui"
)

var playCmd = &cobra.Command{
	Use:   "play [shortcode|url]",
	Short: "Play a video with the configured player",
	Args:  cobra.MaximumNArgs(1),
	RunE:  playRun,
}

func init() {
	playCmd.Flags().BoolVarP(&flagContinue, "continue", "c", false, "Resume from the position saved in history")
}

// playRun is also the default command: streamable <shortcode>
func playRun(cmd *cobra.Command, args []string) error {
	sc, err := shortcodeArg(args)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}

	var startPos float64
	if flagContinue && cfg.History {
		startPos = savedPosition(cmd.Context(), sc)
	}

	return playShortcode(cmd.Context(), cmd.OutOrStdout(), client, sc, startPos)
}

// resolve fetches the resource and picks the playable mp4 rendition.
func resolve(ctx context.Context, client *provider.Streamable, sc string) (*media.Playable, error) {
	res, err := ui.Await("Fetching "+sc, client.Async().Fetch(ctx, sc))
	if err != nil {
		return nil, err
	}
	if !res.Ready() {
		debugf("%s is %s (%d%%)", sc, res.Status, res.Percent)
	}

	item, err := provider.Playable(res)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sc, err)
	}
	debugf("stream URL: %s", item.URL.Redacted())
	return item, nil
}

// playShortcode resolves and plays one video, then records it in history.
func playShortcode(ctx context.Context, out io.Writer, client *provider.Streamable, sc string, startPos float64) error {
	item, err := resolve(ctx, client, sc)
	if err != nil {
		return err
	}

	// JSON output mode
	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"shortcode": sc,
			"title":     item.Title,
			"url":       item.URL.String(),
			"width":     item.Width,
			"height":    item.Height,
			"duration":  item.Duration,
		})
	}

	p := player.New(cfg.Player)
	if !p.Available() {
		return fmt.Errorf("player %q not found in PATH", cfg.Player)
	}

	if startPos > 0 {
		debugf("resuming from position: %.0fs", startPos)
	}
	lastPos, err := p.Play(item, startPos)
	if err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}

	if cfg.History {
		entry := media.HistoryEntry{
			Shortcode: sc,
			Title:     item.Title,
			URL:       item.URL.String(),
			Position:  lastPos,
			Duration:  float64(item.Duration),
		}
		if err := saveHistory(ctx, entry); err != nil {
			debugf("saving history failed: %v", err)
		}
	}

	return nil
}

func openHistory() (*history.Store, error) {
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}
	return history.Open(path)
}

func saveHistory(ctx context.Context, entry media.HistoryEntry) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(ctx, entry)
}

func savedPosition(ctx context.Context, sc string) float64 {
	store, err := openHistory()
	if err != nil {
		debugf("opening history failed: %v", err)
		return 0
	}
	defer store.Close()

	entry, err := store.Get(ctx, sc)
	if err != nil {
		if !errors.Is(err, history.ErrNotFound) {
			debugf("reading history failed: %v", err)
		}
		return 0
	}
	return entry.Position
}
