package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hollis/circdesk/internal/api"
)

// membersState mirrors booksState for the members screen.
type membersState struct {
	cursor int
	mode   entryMode
	editID int64
	form   form
}

const (
	memberFieldName = iota
	memberFieldEmail
	memberFieldPhone
	memberFieldAddress
)

func newMemberForm(title string, member api.Member) form {
	f := newForm(title,
		formField{label: "Name", value: member.Name},
		formField{label: "Email", value: member.Email},
		formField{label: "Phone", value: member.Phone},
		formField{label: "Address", value: member.Address},
	)
	if member.RegistrationDate != "" {
		f.note = fmt.Sprintf("Registered on %s.", member.RegistrationDate)
	}
	return f
}

func (m Model) handleMembersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	members := m.snapshot.Members

	switch msg.String() {
	case "j", "down":
		m.members.cursor = clamp(m.members.cursor+1, len(members))
	case "k", "up":
		m.members.cursor = clamp(m.members.cursor-1, len(members))
	case "g", "home":
		m.members.cursor = 0
	case "G", "end":
		m.members.cursor = clamp(len(members)-1, len(members))

	case "a":
		m.members.mode = modeAdd
		m.members.form = newMemberForm("Add member", api.Member{})
		m.status = ""

	case "e", "enter":
		if len(members) == 0 {
			return m, nil
		}
		member := members[m.members.cursor]
		m.members.mode = modeEdit
		m.members.editID = member.ID
		m.members.form = newMemberForm(fmt.Sprintf("Edit %s", member.Name), member)
		m.status = ""

	case "x", "delete":
		if len(members) == 0 {
			return m, nil
		}
		member := members[m.members.cursor]
		m.confirm = &confirmAction{
			prompt: fmt.Sprintf("Delete %s?", member.Name),
			accept: m.deleteMemberCmd(member.ID),
		}
	}

	return m, nil
}

func (m Model) handleMemberFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.members.mode = modeBrowse
		return m, nil

	case "enter":
		draft := api.MemberDraft{
			Name:    m.members.form.Value(memberFieldName),
			Email:   m.members.form.Value(memberFieldEmail),
			Phone:   m.members.form.Value(memberFieldPhone),
			Address: m.members.form.Value(memberFieldAddress),
		}
		mode, editID := m.members.mode, m.members.editID
		m.members.mode = modeBrowse
		if mode == modeAdd {
			return m, m.createMemberCmd(draft)
		}
		return m, m.updateMemberCmd(editID, draft)

	case "tab", "down":
		m.members.form.Next()
		return m, nil

	case "shift+tab", "up":
		m.members.form.Prev()
		return m, nil
	}

	cmd := m.members.form.Update(msg)
	return m, cmd
}

func (m Model) renderMembers() string {
	styles := m.theme.Styles()

	if m.members.mode != modeBrowse {
		return m.members.form.View(m.theme)
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Members"))
	b.WriteString("\n\n")

	if len(m.snapshot.Members) == 0 {
		b.WriteString(styles.MutedText.Render("No registered members."))
		b.WriteString("\n")
		return b.String()
	}

	cols := []column{
		{title: "Name", width: 24},
		{title: "Email", width: 28},
		{title: "Phone", width: 14},
		{title: "Address", width: 26},
		{title: "Registered", width: 10},
	}
	rows := make([][]string, 0, len(m.snapshot.Members))
	for _, member := range m.snapshot.Members {
		rows = append(rows, []string{
			member.Name,
			member.Email,
			member.Phone,
			member.Address,
			member.RegistrationDate,
		})
	}
	b.WriteString(renderTable(m.theme, cols, rows, m.members.cursor, true))
	return b.String()
}

func (m Model) createMemberCmd(draft api.MemberDraft) tea.Cmd {
	ctx, client, store := m.ctx, m.client, m.store
	return func() tea.Msg {
		created, err := client.CreateMember(ctx, draft)
		if err != nil {
			return statusMsg{text: api.Normalize(err, "Could not add the member."), isErr: true}
		}
		members, err := client.ListMembers(ctx)
		store.SetMembers(members, err)
		return statusMsg{text: fmt.Sprintf("Added %s.", created.Name)}
	}
}

func (m Model) updateMemberCmd(id int64, draft api.MemberDraft) tea.Cmd {
	ctx, client, store := m.ctx, m.client, m.store
	return func() tea.Msg {
		updated, err := client.UpdateMember(ctx, id, draft)
		if err != nil {
			return statusMsg{text: api.Normalize(err, "Could not update the member."), isErr: true}
		}
		members, err := client.ListMembers(ctx)
		store.SetMembers(members, err)
		return statusMsg{text: fmt.Sprintf("Updated %s.", updated.Name)}
	}
}

func (m Model) deleteMemberCmd(id int64) tea.Cmd {
	ctx, client, store := m.ctx, m.client, m.store
	return func() tea.Msg {
		if err := client.DeleteMember(ctx, id); err != nil {
			return statusMsg{text: api.Normalize(err, "Could not delete the member."), isErr: true}
		}
		members, err := client.ListMembers(ctx)
		store.SetMembers(members, err)
		return statusMsg{text: "Member deleted."}
	}
}
