package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"streamable/internal/history"
	"streamable/internal/ui"
)

var flagClearHistory bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Resume from play history",
	Args:  cobra.NoArgs,
	RunE:  historyRun,
}

func init() {
	historyCmd.Flags().BoolVar(&flagClearHistory, "clear", false, "Delete all history entries")
}

func historyRun(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	if flagClearHistory {
		ok, err := ui.Confirm("Clear play history?")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		return store.Clear(cmd.Context())
	}

	entries, err := store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No history entries found.")
		return nil
	}

	if flagJSON {
		return encodeJSON(cmd, entries)
	}

	labels := history.FormatForDisplay(entries)
	items := make([]ui.Item, len(entries))
	for i, e := range entries {
		items[i] = ui.Item{
			Label:  labels[i],
			Detail: e.Shortcode + " · " + e.PlayedAt.Format(time.DateTime),
		}
	}

	idx, err := ui.Select("History", items)
	if err != nil {
		return err
	}

	selected := entries[idx]
	debugf("resuming: %s (shortcode: %s)", selected.Title, selected.Shortcode)

	// The stored URL is signed and expires, so the video is always re-resolved.
	client, err := newClient()
	if err != nil {
		return err
	}
	return playShortcode(cmd.Context(), cmd.OutOrStdout(), client, selected.Shortcode, selected.Position)
}
