package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/hollis/circdesk/internal/circulation"
)

// renderHeader renders the status bar: app name, backend address, catalog
// counts, last fetch time, and the last fetch error when there is one.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{
		styles.Logo.Render("circdesk"),
		styles.MutedText.Render(truncateMiddle(m.cfg.BaseURL, 40)),
	}

	parts = append(parts,
		styles.MutedText.Render("Books:")+" "+styles.Text.Render(fmt.Sprintf("%d", len(m.snapshot.Books))),
		styles.MutedText.Render("Members:")+" "+styles.Text.Render(fmt.Sprintf("%d", len(m.snapshot.Members))),
	)

	if ts := m.formatLastUpdated(); ts != "" {
		parts = append(parts, styles.FaintText.Render(ts))
	}

	if m.snapshot.LastError != nil {
		maxErr := 60
		if m.width < 100 {
			maxErr = 30
		}
		errText := truncate(fmt.Sprintf("%v", m.snapshot.LastError), maxErr)
		parts = append(parts,
			styles.DangerText.Render("ERROR")+" "+styles.DangerText.Render(errText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) formatLastUpdated() string {
	if m.snapshot.LastUpdated.IsZero() {
		return ""
	}
	since := time.Since(m.snapshot.LastUpdated)
	out := m.snapshot.LastUpdated.Format("15:04:05")
	switch {
	case since < time.Minute:
		out += " (now)"
	case since < time.Hour:
		out += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		out += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return out
}

// renderCommandBar renders the per-view key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewBooks:
		commands = []cmd{
			{"a", "Add"},
			{"e", "Edit"},
			{"x", "Delete"},
			{"r", "Reload"},
			{"j/k", "Navigate"},
			{"d/m/c", "Views"},
			{"?", "More"},
		}
	case ViewMembers:
		commands = []cmd{
			{"a", "Add"},
			{"e", "Edit"},
			{"x", "Delete"},
			{"r", "Reload"},
			{"j/k", "Navigate"},
			{"d/b/c", "Views"},
			{"?", "More"},
		}
	case ViewCirculation:
		commands = []cmd{
			{"t", m.circModeLabel()},
			{"tab", "Pane"},
			{"space", "Choose book"},
			{"enter", "Go"},
			{"esc", "Clear member"},
			{"d/b/m", "Views"},
			{"?", "More"},
		}
	default: // ViewDashboard
		commands = []cmd{
			{"b", "Books"},
			{"m", "Members"},
			{"c", "Borrow & return"},
			{"r", "Reload"},
			{"?", "More"},
		}
	}

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			styles.AccentText.Render(c.key)+styles.FaintText.Render(":")+styles.MutedText.Render(c.desc))
	}
	segments = append(segments,
		styles.AccentText.Render("T")+styles.FaintText.Render(":")+styles.FaintText.Render(m.theme.Name))

	return styles.Header.Width(m.width).Render(strings.Join(segments, "  "))
}

func (m Model) circModeLabel() string {
	if m.desk != nil && m.desk.Mode() == circulation.ModeReturn {
		return "Return"
	}
	return "Borrow"
}
