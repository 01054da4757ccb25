package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hollis/circdesk/internal/circulation"
)

// circPane identifies which list on the circulation screen owns the cursor.
type circPane int

const (
	paneMembers circPane = iota
	paneAction
)

// circState tracks cursor positions on the circulation screen. The desk
// itself owns the selections; this is presentation state only.
type circState struct {
	pane      circPane
	memberIdx int
	bookIdx   int
	loanIdx   int
}

// clampTo keeps the cursors inside the desk's current lists. The member list
// has a leading "none" entry, hence the +1.
func (c *circState) clampTo(desk *circulation.Desk) {
	if desk == nil {
		return
	}
	c.memberIdx = clamp(c.memberIdx, len(desk.Members())+1)
	c.bookIdx = clamp(c.bookIdx, len(desk.AvailableBooks()))
	c.loanIdx = clamp(c.loanIdx, len(desk.Active()))
}

func (m Model) handleCirculationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	desk := m.desk

	switch msg.String() {
	case "tab", "shift+tab":
		if m.circ.pane == paneMembers {
			m.circ.pane = paneAction
		} else {
			m.circ.pane = paneMembers
		}
		return m, nil

	case "t":
		next := circulation.ModeBorrow
		if desk.Mode() == circulation.ModeBorrow {
			next = circulation.ModeReturn
		}
		m.circ.bookIdx = 0
		m.circ.loanIdx = 0
		return m, m.deskModeCmd(next)

	case "esc":
		if desk.MemberID() == 0 {
			return m, nil
		}
		m.circ.pane = paneMembers
		return m, m.deskSelectMemberCmd(0)

	case "j", "down":
		m.circMoveCursor(1)
		return m, nil
	case "k", "up":
		m.circMoveCursor(-1)
		return m, nil
	case "g", "home":
		m.circSetCursor(0)
		return m, nil
	case "G", "end":
		m.circSetCursor(1 << 30)
		return m, nil

	case " ":
		if m.circ.pane == paneAction && desk.Mode() == circulation.ModeBorrow {
			books := desk.AvailableBooks()
			if m.circ.bookIdx < len(books) {
				desk.SelectBook(books[m.circ.bookIdx].ID)
			}
		}
		return m, nil

	case "enter":
		return m.circConfirm()
	}

	return m, nil
}

func (m *Model) circMoveCursor(delta int) {
	desk := m.desk
	switch {
	case m.circ.pane == paneMembers:
		m.circ.memberIdx = clamp(m.circ.memberIdx+delta, len(desk.Members())+1)
	case desk.Mode() == circulation.ModeBorrow:
		m.circ.bookIdx = clamp(m.circ.bookIdx+delta, len(desk.AvailableBooks()))
	default:
		m.circ.loanIdx = clamp(m.circ.loanIdx+delta, len(desk.Active()))
	}
}

func (m *Model) circSetCursor(idx int) {
	desk := m.desk
	switch {
	case m.circ.pane == paneMembers:
		m.circ.memberIdx = clamp(idx, len(desk.Members())+1)
	case desk.Mode() == circulation.ModeBorrow:
		m.circ.bookIdx = clamp(idx, len(desk.AvailableBooks()))
	default:
		m.circ.loanIdx = clamp(idx, len(desk.Active()))
	}
}

// circConfirm acts on enter: pick a member, submit a borrow, or return the
// highlighted loan, depending on the focused pane and mode.
func (m Model) circConfirm() (tea.Model, tea.Cmd) {
	desk := m.desk

	if m.circ.pane == paneMembers {
		if m.circ.memberIdx == 0 {
			return m, m.deskSelectMemberCmd(0)
		}
		members := desk.Members()
		if m.circ.memberIdx-1 >= len(members) {
			return m, nil
		}
		m.circ.pane = paneAction
		m.circ.bookIdx = 0
		m.circ.loanIdx = 0
		return m, m.deskSelectMemberCmd(members[m.circ.memberIdx-1].ID)
	}

	if desk.Mode() == circulation.ModeBorrow {
		if !desk.CanBorrow() {
			return m, nil
		}
		return m, m.deskBorrowCmd()
	}

	loans := desk.Active()
	if len(loans) == 0 || m.circ.loanIdx >= len(loans) {
		return m, nil
	}
	return m, m.deskReturnCmd(loans[m.circ.loanIdx].ID)
}

func (m Model) renderCirculation() string {
	styles := m.theme.Styles()
	desk := m.desk

	left := m.renderMemberPicker()
	var right string
	if desk.Mode() == circulation.ModeBorrow {
		right = m.renderBorrowPane()
	} else {
		right = m.renderReturnPane()
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	var b strings.Builder
	b.WriteString(panes)
	b.WriteString("\n")

	if notice := desk.Notice(); notice.Text != "" {
		line := styles.SuccessText.Render(notice.Text)
		if notice.Err {
			line = styles.DangerText.Render(notice.Text)
		}
		b.WriteString("\n")
		b.WriteString(line)
		b.WriteString("\n")
	}
	if desk.Busy() {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Working..."))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderMemberPicker() string {
	styles := m.theme.Styles()
	desk := m.desk
	focused := m.circ.pane == paneMembers

	var b strings.Builder
	title := "Member"
	if focused {
		title = "Member *"
	}
	b.WriteString(styles.AccentText.Bold(true).Render(title))
	b.WriteString("\n\n")

	members := desk.Members()
	entries := []string{"- none -"}
	for _, member := range members {
		entries = append(entries, member.Name)
	}
	selectedID := desk.MemberID()
	for i, entry := range entries {
		marker := "  "
		if i > 0 && members[i-1].ID == selectedID {
			marker = "* "
		} else if i == 0 && selectedID == 0 {
			marker = "* "
		}
		line := marker + truncate(entry, 26)
		if focused && i == m.circ.memberIdx {
			line = styles.Selected.Render(pad(line, 30))
		} else {
			line = styles.Text.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return styles.Box.Render(b.String())
}

func (m Model) renderBorrowPane() string {
	styles := m.theme.Styles()
	desk := m.desk
	focused := m.circ.pane == paneAction

	var b strings.Builder
	title := "Borrow"
	if focused {
		title = "Borrow *"
	}
	b.WriteString(styles.AccentText.Bold(true).Render(title))
	b.WriteString("\n\n")

	if _, ok := desk.Member(); !ok {
		b.WriteString(styles.MutedText.Render("Select a member first."))
		b.WriteString("\n")
		return styles.Box.Render(b.String())
	}

	count := fmt.Sprintf("Active loans: %d / %d", desk.ActiveCount(), circulation.MaxActiveLoans)
	if desk.AtLoanCap() {
		b.WriteString(styles.WarningText.Render(count + "  Limit reached."))
	} else {
		b.WriteString(styles.Text.Render(count))
	}
	b.WriteString("\n\n")

	books := desk.AvailableBooks()
	if len(books) == 0 {
		b.WriteString(styles.MutedText.Render("No books available to borrow."))
		b.WriteString("\n")
		return styles.Box.Render(b.String())
	}

	selected := desk.SelectedBook()
	for i, book := range books {
		marker := "[ ] "
		if book.ID == selected {
			marker = "[x] "
		}
		line := marker + truncate(fmt.Sprintf("%s - %s", book.Title, book.Author), 40)
		if focused && i == m.circ.bookIdx {
			line = styles.Selected.Render(pad(line, 46))
		} else {
			line = styles.Text.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if desk.CanBorrow() {
		b.WriteString(styles.InfoText.Render("enter: borrow selected book"))
	} else {
		b.WriteString(styles.FaintText.Render("enter: borrow selected book"))
	}
	b.WriteString("\n")
	return styles.Box.Render(b.String())
}

func (m Model) renderReturnPane() string {
	styles := m.theme.Styles()
	desk := m.desk
	focused := m.circ.pane == paneAction

	var b strings.Builder
	title := "Return"
	if focused {
		title = "Return *"
	}
	b.WriteString(styles.AccentText.Bold(true).Render(title))
	b.WriteString("\n\n")

	if _, ok := desk.Member(); !ok {
		b.WriteString(styles.MutedText.Render("Select a member first."))
		b.WriteString("\n")
		return styles.Box.Render(b.String())
	}

	loans := desk.Active()
	if len(loans) == 0 {
		b.WriteString(styles.MutedText.Render("No active loans."))
		b.WriteString("\n")
		return styles.Box.Render(b.String())
	}

	for i, loan := range loans {
		line := truncate(fmt.Sprintf("%s  (due %s)", loan.Book.Title, loan.DueAt), 44)
		if focused && i == m.circ.loanIdx {
			line = styles.Selected.Render(pad(line, 46))
		} else {
			line = styles.Text.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.InfoText.Render("enter: return highlighted loan"))
	b.WriteString("\n")
	return styles.Box.Render(b.String())
}
