package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Reload     key.Binding

	// View switching
	ViewDashboard   key.Binding
	ViewBooks       key.Binding
	ViewMembers     key.Binding
	ViewCirculation key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// List actions
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding

	// Circulation
	SwitchPane  key.Binding
	ToggleMode  key.Binding
	ChooseBook  key.Binding
	ClearMember key.Binding

	// Forms and selection
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload from backend"),
		),

		ViewDashboard: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Dashboard"),
		),
		ViewBooks: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Books"),
		),
		ViewMembers: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Members"),
		),
		ViewCirculation: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Borrow & return"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit row"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete row"),
		),

		SwitchPane: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Switch pane"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Borrow/return mode"),
		),
		ChooseBook: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Choose book"),
		),
		ClearMember: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear member"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewDashboard, k.ViewBooks, k.ViewMembers, k.ViewCirculation},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Add, k.Edit, k.Delete, k.Reload},
		{k.SwitchPane, k.ToggleMode, k.ChooseBook, k.ClearMember},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
