package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"streamable/internal/download"
	"streamable/internal/ui"
)

var flagDownloadDir string

var downloadCmd = &cobra.Command{
	Use:   "download [shortcode|url]",
	Short: "Download the mp4 rendition of a video",
	Args:  cobra.MaximumNArgs(1),
	RunE:  downloadRun,
}

func init() {
	downloadCmd.Flags().StringVarP(&flagDownloadDir, "output", "o", "", "Output directory (default: download_dir from config)")
}

func downloadRun(cmd *cobra.Command, args []string) error {
	sc, err := shortcodeArg(args)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}

	item, err := resolve(cmd.Context(), client, sc)
	if err != nil {
		return err
	}

	dir := flagDownloadDir
	if dir == "" {
		dir, err = cfg.ExpandDownloadDir()
		if err != nil {
			return fmt.Errorf("resolving download dir: %w", err)
		}
	}

	name := item.Title
	if name == "" {
		name = sc
	}

	var progress io.Writer
	if ui.IsTerminal() {
		progress = os.Stderr
	}

	outputPath, err := download.Download(cmd.Context(), nil, item, name, dir, progress)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Downloaded: %s\n", outputPath)
	return nil
}
