package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"streamable/internal/media"
	"streamable/internal/provider"
	"streamable/internal/ui"
)

// fetchLimit caps concurrent metadata requests.
const fetchLimit = 4

var browseCmd = &cobra.Command{
	Use:   "browse <shortcode|url>...",
	Short: "Look up several videos at once and pick one to play",
	Args:  cobra.MinimumNArgs(1),
	RunE:  browseRun,
}

type lookup struct {
	shortcode string
	res       *media.VideoResource
	err       error
}

func browseRun(cmd *cobra.Command, args []string) error {
	var shortcodes []string
	for _, arg := range args {
		sc, err := provider.ParseShortcode(arg)
		if err != nil {
			return err
		}
		shortcodes = append(shortcodes, sc)
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	var lookups []lookup
	err = ui.Spin(fmt.Sprintf("Fetching %d videos", len(shortcodes)), func() error {
		lookups = fetchAll(cmd.Context(), client, shortcodes)
		return nil
	})
	if err != nil {
		return err
	}

	var merr *multierror.Error
	items := make([]ui.Item, len(lookups))
	for i, l := range lookups {
		items[i] = lookupItem(l)
		if l.err != nil {
			merr = multierror.Append(merr, l.err)
		}
	}
	if merr != nil && len(merr.Errors) == len(lookups) {
		return merr.ErrorOrNil()
	}
	for _, e := range merr.WrappedErrors() {
		debugf("lookup failed: %v", e)
	}

	if flagJSON {
		return printLookups(cmd, lookups)
	}

	idx, err := ui.Select("Videos", items)
	if err != nil {
		return err
	}
	if lookups[idx].err != nil {
		return lookups[idx].err
	}

	return playShortcode(cmd.Context(), cmd.OutOrStdout(), client, lookups[idx].shortcode, 0)
}

// fetchAll fetches every shortcode concurrently. Individual failures are kept
// with their lookup instead of cancelling the rest.
func fetchAll(ctx context.Context, client provider.Provider, shortcodes []string) []lookup {
	lookups := make([]lookup, len(shortcodes))

	var g errgroup.Group
	g.SetLimit(fetchLimit)
	for i, sc := range shortcodes {
		i, sc := i, sc
		g.Go(func() error {
			res, err := client.Fetch(ctx, sc)
			lookups[i] = lookup{shortcode: sc, res: res, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return lookups
}

func lookupItem(l lookup) ui.Item {
	if l.err != nil {
		return ui.Item{Label: l.shortcode, Detail: "error: " + l.err.Error()}
	}

	label := l.res.Title
	if label == "" {
		label = l.shortcode
	}

	detail := []string{l.shortcode, l.res.Status.String()}
	if mp4 := l.res.Files.MP4; mp4.Duration > 0 {
		detail = append(detail, media.FormatDuration(float64(mp4.Duration)))
	}
	if mp4 := l.res.Files.MP4; mp4.Width > 0 && mp4.Height > 0 {
		detail = append(detail, fmt.Sprintf("%dx%d", mp4.Width, mp4.Height))
	}
	return ui.Item{Label: label, Detail: strings.Join(detail, " · ")}
}

func printLookups(cmd *cobra.Command, lookups []lookup) error {
	type entry struct {
		Shortcode string               `json:"shortcode"`
		Resource  *media.VideoResource `json:"resource,omitempty"`
		Error     string               `json:"error,omitempty"`
	}
	out := make([]entry, len(lookups))
	for i, l := range lookups {
		out[i] = entry{Shortcode: l.shortcode, Resource: l.res}
		if l.err != nil {
			out[i].Error = l.err.Error()
		}
	}
	return encodeJSON(cmd, out)
}
