package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamable/internal/media"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	playedAt := time.Unix(1700000000, 123)
	entry := media.HistoryEntry{
		Shortcode: "abc123",
		Title:     "Cat video",
		URL:       "https://cdn.example.com/abc123.mp4",
		Position:  42,
		Duration:  120,
		PlayedAt:  playedAt,
	}
	require.NoError(t, s.Save(ctx, entry))

	got, err := s.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, entry.Title, got.Title)
	assert.Equal(t, entry.URL, got.URL)
	assert.Equal(t, 42.0, got.Position)
	assert.Equal(t, 120.0, got.Duration)
	assert.True(t, playedAt.Equal(got.PlayedAt))
}

func TestSaveUpdatesExisting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, media.HistoryEntry{Shortcode: "abc", Title: "Old", Position: 10}))
	require.NoError(t, s.Save(ctx, media.HistoryEntry{Shortcode: "abc", Title: "New", Position: 90}))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "New", entries[0].Title)
	assert.Equal(t, 90.0, entries[0].Position)
}

func TestSaveStampsPlayedAt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	before := time.Now()
	require.NoError(t, s.Save(ctx, media.HistoryEntry{Shortcode: "abc"}))

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, got.PlayedAt.Before(before))
}

func TestSaveRequiresShortcode(t *testing.T) {
	s := openTestStore(t)
	assert.Error(t, s.Save(context.Background(), media.HistoryEntry{Title: "no id"}))
}

func TestListOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Unix(1700000000, 0)
	require.NoError(t, s.Save(ctx, media.HistoryEntry{Shortcode: "old", PlayedAt: base}))
	require.NoError(t, s.Save(ctx, media.HistoryEntry{Shortcode: "new", PlayedAt: base.Add(time.Hour)}))
	require.NoError(t, s.Save(ctx, media.HistoryEntry{Shortcode: "mid", PlayedAt: base.Add(time.Minute)}))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	var order []string
	for _, e := range entries {
		order = append(order, e.Shortcode)
	}
	assert.Equal(t, []string{"new", "mid", "old"}, order)
}

func TestListEmpty(t *testing.T) {
	s := openTestStore(t)
	entries, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRemoveAndClear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, sc := range []string{"a", "b", "c"} {
		require.NoError(t, s.Save(ctx, media.HistoryEntry{Shortcode: sc}))
	}

	require.NoError(t, s.Remove(ctx, "b"))
	require.NoError(t, s.Remove(ctx, "missing"))
	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	require.NoError(t, s.Clear(ctx))
	entries, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, media.HistoryEntry{Shortcode: "keep", Title: "Kept"}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, "Kept", got.Title)
}

func TestFormatForDisplay(t *testing.T) {
	entries := []media.HistoryEntry{
		{Shortcode: "abc", Title: "Cat video", Position: 30, Duration: 120},
		{Shortcode: "def", Title: "Unwatched"},
		{Shortcode: "ghi"},
	}

	got := FormatForDisplay(entries)
	assert.Equal(t, []string{"Cat video [25%]", "Unwatched", "ghi"}, got)
}
