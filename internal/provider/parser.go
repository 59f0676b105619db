package provider

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"streamable/internal/httputil"
	"streamable/internal/media"
)

// shareHost is the host of Streamable share links.
const shareHost = "streamable.com"

// AbsoluteURL turns a protocol-relative fragment from the API ("//host/path")
// into an HTTPS URL.
func AbsoluteURL(fragment string) (*url.URL, error) {
	raw := "https:" + fragment
	if err := httputil.ValidateURL(raw); err != nil {
		return nil, fmt.Errorf("resolving %q: %w", fragment, err)
	}
	return url.Parse(raw)
}

// EmbedSource extracts the iframe source from a resource's embed code.
// Uses DOM parsing so attribute quoting and ordering do not matter.
func EmbedSource(res *media.VideoResource) (*url.URL, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.EmbedCode))
	if err != nil {
		return nil, fmt.Errorf("parsing embed code: %w", err)
	}

	src, exists := doc.Find("iframe").First().Attr("src")
	src = strings.TrimSpace(src)
	if !exists || src == "" {
		return nil, fmt.Errorf("embed iframe: %w", ErrUnavailable)
	}

	if strings.HasPrefix(src, "//") {
		return AbsoluteURL(src)
	}

	u, err := url.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing embed source: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("embed source %q has no host", src)
	}
	return u, nil
}

// ParseShortcode accepts a bare shortcode or a Streamable share link and
// returns the shortcode.
// e.g., "https://streamable.com/e/abc123" -> "abc123"
func ParseShortcode(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrEmptyShortcode
	}

	// Bare shortcodes are opaque; the API decides whether they exist.
	if !strings.Contains(input, "/") {
		return input, nil
	}

	raw := input
	if !strings.Contains(raw, "://") {
		raw = "https://" + strings.TrimPrefix(raw, "//")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", input, err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != shareHost {
		return "", fmt.Errorf("%q is not a %s link", input, shareHost)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] != "":
		return parts[0], nil
	case len(parts) == 2 && isEmbedPrefix(parts[0]) && parts[1] != "":
		return parts[1], nil
	}
	return "", fmt.Errorf("no shortcode in %q", input)
}

// isEmbedPrefix matches the single-letter path prefixes used by embed and share links.
func isEmbedPrefix(s string) bool {
	switch s {
	case "e", "o", "s", "t":
		return true
	}
	return false
}
