// Package media defines the Streamable resource model and the shared types
// handed to players and the history store.
package media

import (
	"fmt"
	"image"
	"net/url"
	"time"

	"streamable/internal/generic"
)

// Status is a transcoding state reported by the API.
type Status int

const (
	StatusUploading Status = iota
	StatusProcessing
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusUploading:
		return "uploading"
	case StatusProcessing:
		return "processing"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Credentials is a username/password pair for HTTP Basic auth.
type Credentials struct {
	Username string
	Password string
}

// VideoResource is the decoded response of GET /videos/{shortcode}.
// Values are never modified after decoding.
type VideoResource struct {
	Status       Status `json:"status"`
	Percent      int    `json:"percent"`
	URL          string `json:"url"`
	EmbedCode    string `json:"embed_code"`
	ThumbnailURL string `json:"thumbnail_url"` // protocol-relative, e.g. "//cdn-cf-east.streamable.com/image/abc.jpg"
	Title        string `json:"title"`
	Message      Null   `json:"message"`
	Source       Null   `json:"source"`
	Files        Files  `json:"files"`
}

// Ready reports whether transcoding has finished.
func (v *VideoResource) Ready() bool {
	return v.Status == StatusReady
}

// Files holds the renditions of a video.
type Files struct {
	MP4      Rendition `json:"mp4"`
	Original Rendition `json:"original"`
}

// Rendition is one encoded variant of a video. URL is absent until the
// variant has been transcoded.
type Rendition struct {
	Status    generic.Option[Status] `json:"status"`
	URL       generic.Option[string] `json:"url"`
	Framerate int                    `json:"framerate"`
	Height    int                    `json:"height"`
	Width     int                    `json:"width"`
	Bitrate   int                    `json:"bitrate"`
	Size      int                    `json:"size"`
	Duration  int                    `json:"duration"`
}

// Ready reports whether the rendition has a downloadable URL.
func (r Rendition) Ready() bool {
	return r.URL.IsSome()
}

// Playable is a resolved media URL plus the details a player needs.
type Playable struct {
	URL       *url.URL
	Title     string
	Width     int
	Height    int
	Framerate int
	Duration  int // seconds
}

// TitleThumbnail is the combined result of a title and thumbnail lookup.
// Title can be present even when Thumbnail is not.
type TitleThumbnail struct {
	Title     generic.Option[string]
	Thumbnail generic.Option[image.Image]
}

// HistoryEntry represents a single played video in the history store.
type HistoryEntry struct {
	Shortcode string
	Title     string
	URL       string    // Resolved mp4 URL at the time of playback
	Position  float64   // Last playback position in seconds
	Duration  float64   // Total duration in seconds
	PlayedAt  time.Time // Last time the entry was saved
}

// FormatDuration formats seconds as H:MM:SS or M:SS.
func FormatDuration(seconds float64) string {
	s := int(seconds)
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
