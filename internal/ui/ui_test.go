package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamable/internal/generic"
	"streamable/internal/media"
)

func update(t *testing.T, m tea.Model, msgs ...tea.Msg) (tea.Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func testItems() []Item {
	return []Item{
		{Label: "first", Detail: "abc"},
		{Label: "second", Detail: "def"},
		{Label: "third", Detail: "ghi"},
	}
}

func TestSelectEnterPicksCurrent(t *testing.T) {
	m, cmd := update(t, newSelectModel("Pick", testItems()), tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, 0, m.(selectModel).choice)
}

func TestSelectCursorMovement(t *testing.T) {
	m, _ := update(t, newSelectModel("Pick", testItems()),
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	assert.Equal(t, 2, m.(selectModel).choice)
}

func TestSelectCancel(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := update(t, newSelectModel("Pick", testItems()), tea.KeyMsg{Type: tea.KeyDown}, tt.key)
			require.NotNil(t, cmd)
			assert.Equal(t, -1, m.(selectModel).choice)
		})
	}
}

func TestSelectWindowResize(t *testing.T) {
	m, _ := update(t, newSelectModel("Pick", testItems()), tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.(selectModel).list.Width())
	assert.Equal(t, 40, m.(selectModel).list.Height())
}

func TestSelectEmpty(t *testing.T) {
	_, err := Select("Pick", nil)
	assert.Error(t, err)
}

func TestInputModel(t *testing.T) {
	m, _ := update(t, newInputModel("Shortcode"),
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	im := m.(inputModel)
	assert.True(t, im.submitted)
	assert.Equal(t, "abc", im.input.Value())
	assert.Empty(t, im.View())
}

func TestInputModelCancel(t *testing.T) {
	m, _ := update(t, newInputModel("Shortcode"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.(inputModel).submitted)
}

func TestSpinModel(t *testing.T) {
	m := newSpinModel("Fetching abc")
	assert.Contains(t, m.View(), "Fetching abc")

	done, cmd := update(t, m, resolvedMsg{})
	require.NotNil(t, cmd)
	assert.True(t, done.(spinModel).resolved)
	assert.Empty(t, done.View())

	cancelled, _ := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, cancelled.(spinModel).cancelled)
}

func TestRenderResource(t *testing.T) {
	res := &media.VideoResource{
		Status:       media.StatusReady,
		Percent:      100,
		URL:          "streamable.com/abc",
		ThumbnailURL: "//cdn.example.com/abc.jpg",
		Title:        "Cat video",
		Files: media.Files{
			MP4: media.Rendition{
				URL:       generic.Some("//cdn.example.com/abc.mp4"),
				Width:     1280,
				Height:    720,
				Framerate: 30,
				Duration:  75,
				Size:      3 * 1024 * 1024,
			},
		},
	}

	out := RenderResource(res)
	assert.Contains(t, out, "Cat video")
	assert.Contains(t, out, "ready")
	assert.Contains(t, out, "https://cdn.example.com/abc.jpg")
	assert.Contains(t, out, "1280x720")
	assert.Contains(t, out, "30fps")
	assert.Contains(t, out, "1:15")
	assert.Contains(t, out, "3.0 MiB")
	assert.Contains(t, out, "not available") // original rendition
}

func TestRenderResourceProcessing(t *testing.T) {
	out := RenderResource(&media.VideoResource{Status: media.StatusProcessing, Percent: 40})
	assert.Contains(t, out, "(untitled)")
	assert.Contains(t, out, "processing (40%)")
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n        int64
		expected string
	}{
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024 * 1024, "5.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatBytes(tt.n))
	}
}
