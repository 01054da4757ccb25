package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// renderHelp shows the full key map. Any key returns to the previous view.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Keys"))
	b.WriteString("\n\n")

	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			b.WriteString(renderBinding(styles, binding))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.MutedText.Render("Press any key to close."))
	b.WriteString("\n")
	return b.String()
}

func renderBinding(styles Styles, binding key.Binding) string {
	h := binding.Help()
	return styles.AccentText.Render(pad(h.Key, 12)) + styles.Text.Render(h.Desc)
}
