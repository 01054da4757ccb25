package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmAction models an explicit confirmation step for destructive
// actions. The prompt and the accepted command are captured up front, so the
// flow that asked for confirmation carries no dialog logic of its own.
type confirmAction struct {
	prompt string
	accept tea.Cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.confirm
	m.confirm = nil
	switch msg.String() {
	case "y", "Y", "enter":
		return m, action.accept
	default:
		return m, nil
	}
}

func (m Model) renderConfirm() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.WarningText.Bold(true).Render(m.confirm.prompt))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("y/enter: yes   any other key: no"))

	box := styles.Box.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
