package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// maxListed bounds how many items the confirmation lists before
// summarizing the rest.
const maxListed = 12

type confirmKeys struct {
	Yes  key.Binding
	No   key.Binding
	Quit key.Binding
}

func (k confirmKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No}
}

func (k confirmKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Yes, k.No, k.Quit}}
}

var defaultConfirmKeys = confirmKeys{
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "delete"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N", "esc", "enter"),
		key.WithHelp("n/esc", "keep everything"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
}

// ConfirmModel asks whether a list of files may be deleted. Anything but an
// explicit yes declines.
type ConfirmModel struct {
	title     string
	items     []string
	keys      confirmKeys
	help      help.Model
	confirmed bool
	done      bool
}

// NewConfirm creates a confirmation prompt for items.
func NewConfirm(title string, items []string) *ConfirmModel {
	return &ConfirmModel{
		title: title,
		items: items,
		keys:  defaultConfirmKeys,
		help:  help.New(),
	}
}

// Confirmed reports whether the user accepted.
func (m *ConfirmModel) Confirmed() bool { return m.confirmed }

// Done reports whether the user has answered.
func (m *ConfirmModel) Done() bool { return m.done }

// Init implements tea.Model
func (m *ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.confirmed, m.done = true, true
			return m, tea.Quit
		case key.Matches(msg, m.keys.No), key.Matches(msg, m.keys.Quit):
			m.confirmed, m.done = false, true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

// View implements tea.Model
func (m *ConfirmModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n")

	var list strings.Builder
	for i, item := range m.items {
		if i == maxListed {
			list.WriteString(mutedStyle.Render(fmt.Sprintf("… and %d more", len(m.items)-maxListed)))
			break
		}
		if i > 0 {
			list.WriteString("\n")
		}
		list.WriteString(deleteStyle.Render("✗ " + item))
	}
	b.WriteString(panelStyle.Render(list.String()) + "\n")
	b.WriteString(m.help.View(m.keys) + "\n")
	return b.String()
}

// Confirm runs the prompt on the given terminal streams and returns the
// answer.
func Confirm(in io.Reader, out io.Writer, title string, items []string) (bool, error) {
	m := NewConfirm(title, items)
	p := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return false, err
	}
	return m.Confirmed(), nil
}
