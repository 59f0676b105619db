// Package provider implements the Streamable API client: the resource fetcher
// and the thumbnail, title and playable-media accessors built on it.
package provider

import (
	"context"
	"errors"
	"image"
	"net/url"

	"streamable/internal/generic"
	"streamable/internal/media"
)

// Provider is the interface implemented by video metadata clients.
//
// Fetch reports failures as errors that match one of ErrEmptyShortcode,
// ErrCredentialEncoding, ErrNetwork or ErrDecode. The remaining methods
// collapse every failure, including a missing sub-resource, into None.
type Provider interface {
	// Fetch returns the decoded metadata for a shortcode.
	Fetch(ctx context.Context, shortcode string) (*media.VideoResource, error)

	// Thumbnail downloads and decodes the video's thumbnail image.
	Thumbnail(ctx context.Context, shortcode string) generic.Option[image.Image]

	// TitleAndThumbnail returns the title and thumbnail. A failed thumbnail
	// never hides the title.
	TitleAndThumbnail(ctx context.Context, shortcode string) media.TitleThumbnail

	// VideoItem returns a playable handle for the mp4 rendition.
	VideoItem(ctx context.Context, shortcode string) generic.Option[*media.Playable]

	// VideoURL returns the absolute URL of the mp4 rendition.
	VideoURL(ctx context.Context, shortcode string) generic.Option[*url.URL]
}

var (
	// ErrEmptyShortcode is returned when no shortcode was given.
	ErrEmptyShortcode = errors.New("empty shortcode")

	// ErrCredentialEncoding is returned when the stored credentials cannot be
	// encoded into an Authorization header. No request is sent.
	ErrCredentialEncoding = errors.New("credentials cannot be encoded")

	// ErrNetwork covers transport failures and non-2xx responses.
	ErrNetwork = errors.New("network error")

	// ErrDecode is returned for malformed JSON or an unexpected response shape.
	ErrDecode = errors.New("decode error")

	// ErrUnavailable means a sub-resource, such as a rendition URL, is absent.
	ErrUnavailable = errors.New("resource unavailable")
)
