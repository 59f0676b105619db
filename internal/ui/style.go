package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"streamable/internal/media"
)

var (
	accent = lipgloss.Color("#0F90FA")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(accent).Padding(0, 1)
	accentStyle = lipgloss.NewStyle().Foreground(accent)
	promptStyle = lipgloss.NewStyle().Foreground(accent).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(11)
	readyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// RenderResource formats a video resource for terminal output.
func RenderResource(res *media.VideoResource) string {
	var b strings.Builder

	title := res.Title
	if title == "" {
		title = "(untitled)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("status", renderStatus(res.Status, res.Percent))
	row("page", res.URL)
	if res.ThumbnailURL != "" {
		row("thumbnail", "https:"+res.ThumbnailURL)
	}
	row("mp4", renderRendition(res.Files.MP4))
	row("original", renderRendition(res.Files.Original))

	return b.String()
}

func renderStatus(s media.Status, percent int) string {
	switch s {
	case media.StatusReady:
		return readyStyle.Render(s.String())
	case media.StatusError:
		return errStyle.Render(s.String())
	default:
		return warnStyle.Render(fmt.Sprintf("%s (%d%%)", s, percent))
	}
}

func renderRendition(r media.Rendition) string {
	parts := []string{}
	if r.Width > 0 && r.Height > 0 {
		parts = append(parts, fmt.Sprintf("%dx%d", r.Width, r.Height))
	}
	if r.Framerate > 0 {
		parts = append(parts, fmt.Sprintf("%dfps", r.Framerate))
	}
	if r.Duration > 0 {
		parts = append(parts, media.FormatDuration(float64(r.Duration)))
	}
	if r.Size > 0 {
		parts = append(parts, formatBytes(int64(r.Size)))
	}
	if !r.Ready() {
		parts = append(parts, warnStyle.Render("not available"))
	}
	return strings.Join(parts, "  ")
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
