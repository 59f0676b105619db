package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"streamable/internal/generic"
	"streamable/internal/httputil"
	"streamable/internal/media"
)

// DefaultBase is the host of the public Streamable API.
const DefaultBase = "api.streamable.com"

// Streamable implements Provider for the Streamable API.
type Streamable struct {
	base   string // e.g., "api.streamable.com"
	client *http.Client
	log    *zap.Logger
	creds  atomic.Pointer[media.Credentials]
}

// ClientOption configures a Streamable client.
type ClientOption func(*Streamable)

// WithBase overrides the API host.
func WithBase(base string) ClientOption {
	return func(s *Streamable) {
		s.base = base
	}
}

// WithHTTPClient replaces the hardened default HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(s *Streamable) {
		s.client = client
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(s *Streamable) {
		s.client = httputil.NewClient(timeout)
	}
}

// WithLogger sets the logger used for request tracing and soft failures.
func WithLogger(log *zap.Logger) ClientOption {
	return func(s *Streamable) {
		s.log = log
	}
}

// WithCredentials is equivalent to calling Authenticate after New.
func WithCredentials(username, password string) ClientOption {
	return func(s *Streamable) {
		s.Authenticate(username, password)
	}
}

// NewStreamable creates a new Streamable provider.
func NewStreamable(opts ...ClientOption) *Streamable {
	s := &Streamable{
		base:   DefaultBase,
		client: httputil.NewClient(0),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticate replaces the credentials used by subsequent requests.
// Requests already in flight keep the pair they started with.
func (s *Streamable) Authenticate(username, password string) {
	s.creds.Store(&media.Credentials{Username: username, Password: password})
}

func (s *Streamable) credentials() media.Credentials {
	if c := s.creds.Load(); c != nil {
		return *c
	}
	return media.Credentials{}
}

func (s *Streamable) baseURL() string {
	return "https://" + s.base
}

// VideoEndpoint returns the metadata URL for a shortcode.
func (s *Streamable) VideoEndpoint(shortcode string) string {
	return httputil.BuildURL(s.baseURL(), "videos", shortcode)
}

// Fetch performs one authenticated GET for the shortcode and decodes the response.
func (s *Streamable) Fetch(ctx context.Context, shortcode string) (*media.VideoResource, error) {
	if shortcode == "" {
		return nil, ErrEmptyShortcode
	}

	auth, err := basicAuth(s.credentials())
	if err != nil {
		return nil, err
	}

	endpoint := s.VideoEndpoint(shortcode)
	log := s.log.With(
		zap.String("shortcode", shortcode),
		zap.String("request_id", uuid.NewString()),
	)
	log.Debug("fetching video", zap.String("url", endpoint))

	header := http.Header{}
	header.Set("Authorization", auth)

	start := time.Now()
	body, err := httputil.GetJSON(ctx, s.client, endpoint, header)
	if err != nil {
		log.Debug("fetch failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("fetching %s: %w: %w", shortcode, ErrNetwork, err)
	}

	var res media.VideoResource
	if err := json.Unmarshal(body, &res); err != nil {
		log.Debug("decode failed", zap.Error(err), zap.Int("bytes", len(body)))
		return nil, fmt.Errorf("decoding %s: %w: %w", shortcode, ErrDecode, err)
	}

	log.Debug("fetched video",
		zap.Stringer("status", res.Status),
		zap.Int("percent", res.Percent),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &res, nil
}

// Thumbnail returns the decoded thumbnail image, or None if the metadata
// fetch, the download, or image decoding fails.
func (s *Streamable) Thumbnail(ctx context.Context, shortcode string) generic.Option[image.Image] {
	res, err := s.Fetch(ctx, shortcode)
	if err != nil {
		s.log.Debug("no thumbnail", zap.String("shortcode", shortcode), zap.Error(err))
		return generic.None[image.Image]()
	}
	return s.thumbnail(ctx, shortcode, res)
}

// TitleAndThumbnail fetches once and returns both the title and the
// thumbnail. If only the thumbnail fails the title is still returned.
func (s *Streamable) TitleAndThumbnail(ctx context.Context, shortcode string) media.TitleThumbnail {
	res, err := s.Fetch(ctx, shortcode)
	if err != nil {
		s.log.Debug("no title", zap.String("shortcode", shortcode), zap.Error(err))
		return media.TitleThumbnail{}
	}
	return media.TitleThumbnail{
		Title:     generic.Some(res.Title),
		Thumbnail: s.thumbnail(ctx, shortcode, res),
	}
}

// VideoItem returns a playable handle for the mp4 rendition, or None when the
// fetch fails or the rendition has not been transcoded yet.
func (s *Streamable) VideoItem(ctx context.Context, shortcode string) generic.Option[*media.Playable] {
	res, err := s.Fetch(ctx, shortcode)
	if err != nil {
		s.log.Debug("no video item", zap.String("shortcode", shortcode), zap.Error(err))
		return generic.None[*media.Playable]()
	}
	item, err := Playable(res)
	if err != nil {
		s.log.Debug("no video item", zap.String("shortcode", shortcode), zap.Error(err))
		return generic.None[*media.Playable]()
	}
	return generic.Some(item)
}

// VideoURL returns the absolute mp4 URL under the same rules as VideoItem.
func (s *Streamable) VideoURL(ctx context.Context, shortcode string) generic.Option[*url.URL] {
	return generic.Map(s.VideoItem(ctx, shortcode), func(p *media.Playable) *url.URL {
		return p.URL
	})
}

func (s *Streamable) thumbnail(ctx context.Context, shortcode string, res *media.VideoResource) generic.Option[image.Image] {
	log := s.log.With(zap.String("shortcode", shortcode))

	u, err := AbsoluteURL(res.ThumbnailURL)
	if err != nil {
		log.Debug("bad thumbnail url", zap.String("thumbnail_url", res.ThumbnailURL), zap.Error(err))
		return generic.None[image.Image]()
	}

	data, err := httputil.GetBody(ctx, s.client, u.String(), nil)
	if err != nil {
		log.Debug("couldn't get thumbnail", zap.String("url", u.String()), zap.Error(err))
		return generic.None[image.Image]()
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Debug("couldn't decode thumbnail", zap.String("url", u.String()), zap.Error(err))
		return generic.None[image.Image]()
	}

	log.Debug("decoded thumbnail", zap.String("format", format), zap.Stringer("bounds", img.Bounds()))
	return generic.Some(img)
}

// Playable builds a playable handle from the mp4 rendition of a resource.
// It fails with ErrUnavailable while the rendition has no URL.
func Playable(res *media.VideoResource) (*media.Playable, error) {
	mp4 := res.Files.MP4
	path, ok := mp4.URL.Get()
	if !ok {
		return nil, fmt.Errorf("mp4 rendition: %w", ErrUnavailable)
	}
	u, err := AbsoluteURL(path)
	if err != nil {
		return nil, fmt.Errorf("mp4 rendition: %w", err)
	}
	return &media.Playable{
		URL:       u,
		Title:     res.Title,
		Width:     mp4.Width,
		Height:    mp4.Height,
		Framerate: mp4.Framerate,
		Duration:  mp4.Duration,
	}, nil
}

// basicAuth encodes credentials as an HTTP Basic Authorization value.
func basicAuth(c media.Credentials) (string, error) {
	if !utf8.ValidString(c.Username) || !utf8.ValidString(c.Password) {
		return "", ErrCredentialEncoding
	}
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.Username+":"+c.Password)), nil
}
