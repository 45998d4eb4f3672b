package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Option is one selectable entry in an interactive picker.
type Option struct {
	Key         string // value returned on selection
	Description string // human label shown next to the key
}

// ErrSelectionCancelled is returned when the user dismisses a picker.
var ErrSelectionCancelled = fmt.Errorf("selection cancelled")

// Select runs an arrow-key picker over the given options and returns the
// chosen key. Esc or Ctrl+C cancel with ErrSelectionCancelled.
func Select(prompt string, options []Option, defaultKey string) (string, error) {
	m := selectModel{prompt: prompt, options: options}
	for i, opt := range options {
		if opt.Key == defaultKey {
			m.cursor = i
			break
		}
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", fmt.Errorf("running selection: %w", err)
	}

	result := final.(selectModel)
	if result.cancelled || result.choice == "" {
		return "", ErrSelectionCancelled
	}
	return result.choice, nil
}

type selectModel struct {
	prompt  string
	options []Option
	cursor  int

	choice    string
	cancelled bool
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(m.options)
	case "enter":
		m.choice = m.options[m.cursor].Key
		return m, tea.Quit
	case "esc", "ctrl+c", "q":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.choice != "" || m.cancelled {
		return ""
	}

	var b strings.Builder
	for i, opt := range m.options {
		marker := "  "
		style := normalItemStyle
		if i == m.cursor {
			marker = selectedItemStyle.Render("▶") + " "
			style = selectedItemStyle
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n",
			marker, style.Render(opt.Key), mutedStyle.Render("("+opt.Description+")")))
	}
	b.WriteString("\n" + mutedStyle.Render("Use ↑/↓ to navigate, Enter to select, Esc to cancel"))

	return panelStyle.Render(titleStyle.Render(m.prompt)+"\n\n"+b.String()) + "\n"
}
