package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a small vertical stack of labelled text inputs with one focused
// field at a time. Values travel as strings; submission converts them.
type form struct {
	title  string
	labels []string
	inputs []textinput.Model
	note   string // read-only line rendered under the fields
	focus  int
}

// formField seeds one input.
type formField struct {
	label       string
	placeholder string
	value       string
}

func newForm(title string, fields ...formField) form {
	f := form{title: title}
	for i, field := range fields {
		input := textinput.New()
		input.Placeholder = field.placeholder
		input.SetValue(field.value)
		input.CharLimit = 120
		input.Width = 40
		if i == 0 {
			input.Focus()
		}
		f.labels = append(f.labels, field.label)
		f.inputs = append(f.inputs, input)
	}
	return f
}

// Next moves focus to the following field, wrapping around.
func (f *form) Next() {
	f.setFocus((f.focus + 1) % len(f.inputs))
}

// Prev moves focus to the preceding field, wrapping around.
func (f *form) Prev() {
	f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
}

func (f *form) setFocus(idx int) {
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	f.focus = idx
}

// Update routes a message to the focused input.
func (f *form) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// Value returns the trimmed value of field i.
func (f form) Value(i int) string {
	if i < 0 || i >= len(f.inputs) {
		return ""
	}
	return strings.TrimSpace(f.inputs[i].Value())
}

// IntValue returns field i parsed as an integer. Malformed input collapses
// to zero; validation is the backend's job.
func (f form) IntValue(i int) int {
	n, _ := strconv.Atoi(f.Value(i))
	return n
}

// View renders the form.
func (f form) View(th Theme) string {
	styles := th.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(f.title))
	b.WriteString("\n\n")

	labelWidth := 0
	for _, label := range f.labels {
		if len(label) > labelWidth {
			labelWidth = len(label)
		}
	}
	for i := range f.inputs {
		label := pad(f.labels[i], labelWidth)
		if i == f.focus {
			b.WriteString(styles.AccentText.Render("> " + label))
		} else {
			b.WriteString(styles.MutedText.Render("  " + label))
		}
		b.WriteString("  ")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	if f.note != "" {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(f.note))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter: save   tab: next field   esc: cancel"))
	b.WriteString("\n")
	return b.String()
}
