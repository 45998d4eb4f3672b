package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Confirm asks a yes/no question and returns the answer. Esc and Ctrl+C
// answer no; a dismissed prompt must never proceed with a destructive step.
func Confirm(prompt string, defaultYes bool) bool {
	m := confirmModel{prompt: prompt, yes: defaultYes}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return false
	}
	return final.(confirmModel).yes
}

type confirmModel struct {
	prompt string
	yes    bool
	done   bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		m.yes = true
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.yes = false
		m.done = true
		return m, tea.Quit
	case "left", "right", "tab":
		m.yes = !m.yes
	case "enter":
		m.done = true
		return m, tea.Quit
	case "esc", "ctrl+c":
		m.yes = false
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	yes, no := "  Yes  ", "  No  "
	if m.yes {
		yes = selectedItemStyle.Render("▶ Yes ◀")
	} else {
		no = selectedItemStyle.Render("▶ No ◀")
	}
	body := brightStyle.Render(m.prompt) + "\n\n" + yes + "   " + no + "\n\n" +
		mutedStyle.Render("y/n, ←/→ to move, Enter to choose")
	return panelStyle.Render(body) + "\n"
}
