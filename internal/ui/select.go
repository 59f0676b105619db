// Package ui provides the interactive terminal pieces: pickers, prompts,
// a spinner for pending lookups and styled resource output. Remote data is
// only ever rendered as text, never interpreted.
package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user backs out of a prompt.
var ErrCancelled = errors.New("selection cancelled")

// Item is one entry in a picker.
type Item struct {
	Label  string
	Detail string
	index  int
}

func (i Item) Title() string       { return i.Label }
func (i Item) Description() string { return i.Detail }
func (i Item) FilterValue() string { return i.Label }

type selectModel struct {
	list   list.Model
	choice int
}

func newSelectModel(title string, items []Item) selectModel {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		it.index = i
		listItems[i] = it
	}

	l := list.New(listItems, list.NewDefaultDelegate(), 80, 24)
	l.Title = title
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(len(items) > 1)

	return selectModel{list: l, choice: -1}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		// Keys belong to the filter input while it is open.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if it, ok := m.list.SelectedItem().(Item); ok {
				m.choice = it.index
			}
			return m, tea.Quit
		case "q", "ctrl+c":
			m.choice = -1
			return m, tea.Quit
		case "esc":
			if m.list.FilterState() == list.Unfiltered {
				m.choice = -1
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	return m.list.View()
}

// Select presents items in a filterable list and returns the index of the
// chosen one.
func Select(title string, items []Item) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no items to select from")
	}

	final, err := tea.NewProgram(newSelectModel(title, items),
		tea.WithOutput(os.Stderr),
		tea.WithAltScreen(),
	).Run()
	if err != nil {
		return -1, fmt.Errorf("running picker: %w", err)
	}

	m, ok := final.(selectModel)
	if !ok || m.choice < 0 {
		return -1, ErrCancelled
	}
	if m.choice >= len(items) {
		return -1, fmt.Errorf("selection index %d out of range", m.choice)
	}
	return m.choice, nil
}

// Confirm asks the user a yes/no question.
func Confirm(prompt string) (bool, error) {
	idx, err := Select(prompt, []Item{{Label: "Yes"}, {Label: "No"}})
	if err != nil {
		return false, err
	}
	return idx == 0, nil
}
