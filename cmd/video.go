package cmd

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"streamable/internal/provider"
	"streamable/internal/ui"
)

var flagOutput string

var infoCmd = &cobra.Command{
	Use:   "info [shortcode|url]",
	Short: "Show the metadata of a video",
	Args:  cobra.MaximumNArgs(1),
	RunE:  infoRun,
}

var titleCmd = &cobra.Command{
	Use:   "title [shortcode|url]",
	Short: "Print the title of a video and whether a thumbnail is available",
	Args:  cobra.MaximumNArgs(1),
	RunE:  titleRun,
}

var thumbnailCmd = &cobra.Command{
	Use:   "thumbnail [shortcode|url]",
	Short: "Save the thumbnail of a video as PNG",
	Args:  cobra.MaximumNArgs(1),
	RunE:  thumbnailRun,
}

var urlCmd = &cobra.Command{
	Use:   "url [shortcode|url]",
	Short: "Print the direct mp4 URL of a video",
	Args:  cobra.MaximumNArgs(1),
	RunE:  urlRun,
}

func init() {
	thumbnailCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default: <shortcode>.png)")
}

func infoRun(cmd *cobra.Command, args []string) error {
	sc, err := shortcodeArg(args)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}

	res, err := ui.Await("Fetching "+sc, client.Async().Fetch(cmd.Context(), sc))
	if err != nil {
		return err
	}

	if flagJSON {
		return encodeJSON(cmd, res)
	}

	fmt.Fprint(cmd.OutOrStdout(), ui.RenderResource(res))
	if src, err := provider.EmbedSource(res); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "embed      %s\n", src)
	}
	return nil
}

func titleRun(cmd *cobra.Command, args []string) error {
	sc, err := shortcodeArg(args)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}

	tt, err := ui.Await("Fetching "+sc, client.Async().TitleAndThumbnail(cmd.Context(), sc))
	if err != nil {
		return err
	}

	title, ok := tt.Title.Get()
	if !ok {
		return fmt.Errorf("no title available for %s", sc)
	}

	if flagJSON {
		out := map[string]interface{}{
			"shortcode": sc,
			"title":     title,
			"thumbnail": tt.Thumbnail.IsSome(),
		}
		if img, ok := tt.Thumbnail.Get(); ok {
			out["thumbnail_width"] = img.Bounds().Dx()
			out["thumbnail_height"] = img.Bounds().Dy()
		}
		return encodeJSON(cmd, out)
	}

	fmt.Fprintln(cmd.OutOrStdout(), title)
	if img, ok := tt.Thumbnail.Get(); ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "thumbnail: %dx%d\n", img.Bounds().Dx(), img.Bounds().Dy())
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "no thumbnail")
	}
	return nil
}

func thumbnailRun(cmd *cobra.Command, args []string) error {
	sc, err := shortcodeArg(args)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}

	thumb, err := ui.Await("Fetching thumbnail for "+sc, client.Async().Thumbnail(cmd.Context(), sc))
	if err != nil {
		return err
	}
	img, ok := thumb.Get()
	if !ok {
		return fmt.Errorf("no thumbnail available for %s", sc)
	}

	path := flagOutput
	if path == "" {
		path = sc + ".png"
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encoding thumbnail: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(os.Stderr, "Saved: %s\n", path)
	return nil
}

func urlRun(cmd *cobra.Command, args []string) error {
	sc, err := shortcodeArg(args)
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}

	u, err := ui.Await("Resolving "+sc, client.Async().VideoURL(cmd.Context(), sc))
	if err != nil {
		return err
	}
	if u.IsNone() {
		return fmt.Errorf("%s: %w", sc, provider.ErrUnavailable)
	}

	fmt.Fprintln(cmd.OutOrStdout(), u.Unwrap().String())
	return nil
}
