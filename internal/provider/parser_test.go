package provider

import (
	"errors"
	"testing"

	"streamable/internal/media"
)

func TestParseShortcode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"abc123", "abc123", false},
		{"  abc123\n", "abc123", false},
		{"https://streamable.com/abc123", "abc123", false},
		{"https://www.streamable.com/abc123/", "abc123", false},
		{"https://streamable.com/e/abc123", "abc123", false},
		{"https://streamable.com/o/abc123?autoplay=1", "abc123", false},
		{"streamable.com/abc123", "abc123", false},
		{"//streamable.com/s/abc123", "abc123", false},
		{"https://example.com/abc123", "", true},
		{"https://streamable.com/", "", true},
		{"https://streamable.com/x/y/z", "", true},
		{"https://streamable.com/videos/abc123", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseShortcode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseShortcode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseShortcode(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseShortcodeEmpty(t *testing.T) {
	if _, err := ParseShortcode("   "); !errors.Is(err, ErrEmptyShortcode) {
		t.Errorf("expected ErrEmptyShortcode, got %v", err)
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		fragment string
		expected string
		wantErr  bool
	}{
		{"//example.com/x.jpg", "https://example.com/x.jpg", false},
		{"//cdn-cf-east.streamable.com/video/mp4/abc.mp4?Expires=1&Signature=x", "https://cdn-cf-east.streamable.com/video/mp4/abc.mp4?Expires=1&Signature=x", false},
		{"", "", true},
		{"/relative/path.jpg", "", true},
		{"//", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			got, err := AbsoluteURL(tt.fragment)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AbsoluteURL(%q) error = %v, wantErr %v", tt.fragment, err, tt.wantErr)
			}
			if err == nil && got.String() != tt.expected {
				t.Errorf("AbsoluteURL(%q) = %q, want %q", tt.fragment, got.String(), tt.expected)
			}
		})
	}
}

func TestEmbedSource(t *testing.T) {
	tests := []struct {
		name      string
		embedCode string
		expected  string
		wantErr   error
	}{
		{
			name:      "streamable embed",
			embedCode: `<div style="width:100%;height:0px;position:relative;padding-bottom:56.250%;"><iframe src="https://streamable.com/e/abc123" frameborder="0" width="100%" height="100%" allowfullscreen style="width:100%;height:100%;position:absolute;left:0px;top:0px;overflow:hidden;"></iframe></div>`,
			expected:  "https://streamable.com/e/abc123",
		},
		{
			name:      "protocol-relative source",
			embedCode: `<iframe class='streamable-embed' src='//streamable.com/o/abc123' width="560"></iframe>`,
			expected:  "https://streamable.com/o/abc123",
		},
		{
			name:      "no iframe",
			embedCode: `<div>nothing here</div>`,
			wantErr:   ErrUnavailable,
		},
		{
			name:      "empty embed code",
			embedCode: "",
			wantErr:   ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EmbedSource(&media.VideoResource{EmbedCode: tt.embedCode})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("EmbedSource() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("EmbedSource() error = %v", err)
			}
			if got.String() != tt.expected {
				t.Errorf("EmbedSource() = %q, want %q", got.String(), tt.expected)
			}
		})
	}
}
