package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderDashboard shows catalog-wide figures derived from the last snapshot.
// Figures the backend does not expose through the list endpoints render as
// "n/a" rather than a guess.
func (m Model) renderDashboard() string {
	styles := m.theme.Styles()

	available := m.snapshot.AvailableCopies()
	total := m.snapshot.TotalCopies()
	out := total - available
	if total == 0 {
		out = 0
	}

	cards := []struct {
		label string
		value string
	}{
		{"Books", fmt.Sprintf("%d", len(m.snapshot.Books))},
		{"Copies owned", fmt.Sprintf("%d", total)},
		{"On the shelf", fmt.Sprintf("%d", available)},
		{"Checked out", fmt.Sprintf("%d", out)},
		{"Members", fmt.Sprintf("%d", len(m.snapshot.Members))},
		{"Overdue", "n/a"},
	}

	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		body := styles.AccentText.Bold(true).Render(card.value) + "\n" +
			styles.MutedText.Render(card.label)
		rendered = append(rendered, styles.Box.Width(16).Render(body))
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered[:3]...))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered[3:]...))
	b.WriteString("\n\n")

	// The list endpoints expose no cross-member borrowing feed, so this panel
	// stays empty until the backend grows one.
	b.WriteString(styles.AccentText.Bold(true).Render("Recent borrowings"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Nothing to show yet."))
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Render("Press d, b, m, or c to switch views. Press ? for help."))
	b.WriteString("\n")
	return b.String()
}
