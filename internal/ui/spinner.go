package ui

import (
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"streamable/internal/async"
)

type resolvedMsg struct{}

type spinModel struct {
	spinner   spinner.Model
	title     string
	resolved  bool
	cancelled bool
}

func newSpinModel(title string) spinModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle))
	return spinModel{spinner: s, title: title}
}

func (m spinModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resolvedMsg:
		m.resolved = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinModel) View() string {
	if m.resolved || m.cancelled {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// Await shows a spinner until f resolves and returns its outcome. Without a
// terminal it simply blocks. Interrupting the spinner returns ErrCancelled;
// the underlying call still runs to completion in the background.
func Await[T any](title string, f *async.Future[T]) (T, error) {
	if !IsTerminal() {
		return f.Await()
	}

	p := tea.NewProgram(newSpinModel(title), tea.WithOutput(os.Stderr))
	f.Then(func(T, error) {
		p.Send(resolvedMsg{})
	})

	final, err := p.Run()
	if err != nil {
		return f.Await()
	}
	if m, ok := final.(spinModel); ok && m.cancelled {
		var zero T
		return zero, ErrCancelled
	}
	return f.Await()
}

// Spin runs work behind a spinner.
func Spin(title string, work func() error) error {
	_, err := Await(title, async.Go(func() (struct{}, error) {
		return struct{}{}, work()
	}))
	return err
}
