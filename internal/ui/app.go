package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hollis/circdesk/internal/api"
	"github.com/hollis/circdesk/internal/circulation"
	"github.com/hollis/circdesk/internal/config"
	"github.com/hollis/circdesk/internal/state"
)

// View represents the current active screen.
type View int

const (
	ViewDashboard View = iota
	ViewBooks
	ViewMembers
	ViewCirculation
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Client     *api.Client
	Store      *state.Store
	Desk       *circulation.Desk
	Config     config.Config
	ConfigPath string
	Log        zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx        context.Context
	client     *api.Client
	store      *state.Store
	desk       *circulation.Desk
	cfg        config.Config
	configPath string
	log        zerolog.Logger

	theme Theme
	keys  keyMap

	currentView   View
	width, height int
	ready         bool

	snapshot state.Snapshot

	books   booksState
	members membersState
	circ    circState

	confirm  *confirmAction
	showHelp bool

	status    string
	statusErr bool
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		ctx:         ctx,
		client:      opts.Client,
		store:       opts.Store,
		desk:        opts.Desk,
		cfg:         opts.Config,
		configPath:  opts.ConfigPath,
		log:         opts.Log,
		theme:       GetTheme(opts.Config.Theme),
		keys:        DefaultKeyMap(),
		currentView: ViewDashboard,
	}
	if opts.Store != nil {
		m.snapshot = opts.Store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.refreshCatalogCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.clampCursors()
		return m, nil

	case statusMsg:
		m.status = msg.text
		m.statusErr = msg.isErr
		if m.store != nil {
			m.snapshot = m.store.Snapshot()
		}
		m.clampCursors()
		return m, nil

	case deskMsg:
		if msg.err != nil {
			m.status = api.Normalize(msg.err, "Backend unavailable.")
			m.statusErr = true
		}
		m.clampCursors()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.confirm != nil {
		return m.renderConfirm()
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}
	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	// While a form is open, keystrokes belong to the form.
	if m.currentView == ViewBooks && m.books.mode != modeBrowse {
		return m.handleBookFormKey(msg)
	}
	if m.currentView == ViewMembers && m.members.mode != modeBrowse {
		return m.handleMemberFormKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.cfg.Theme = m.theme.Name
		if err := config.Save(m.configPath, m.cfg); err != nil {
			m.log.Warn().Err(err).Msg("could not persist theme")
		}
		return m, nil

	case "r":
		return m, m.reloadCurrentView()

	case "d":
		m.currentView = ViewDashboard
		m.status = ""
		return m, m.refreshCatalogCmd()

	case "b":
		m.currentView = ViewBooks
		m.status = ""
		return m, m.refreshBooksCmd()

	case "m":
		m.currentView = ViewMembers
		m.status = ""
		return m, m.refreshMembersCmd()

	case "c":
		m.currentView = ViewCirculation
		m.status = ""
		return m, m.deskLoadCmd()
	}

	switch m.currentView {
	case ViewBooks:
		return m.handleBooksKey(msg)
	case ViewMembers:
		return m.handleMembersKey(msg)
	case ViewCirculation:
		return m.handleCirculationKey(msg)
	}

	return m, nil
}

func (m Model) reloadCurrentView() tea.Cmd {
	switch m.currentView {
	case ViewBooks:
		return m.refreshBooksCmd()
	case ViewMembers:
		return m.refreshMembersCmd()
	case ViewCirculation:
		return m.deskLoadCmd()
	default:
		return m.refreshCatalogCmd()
	}
}

func (m *Model) clampCursors() {
	m.books.cursor = clamp(m.books.cursor, len(m.snapshot.Books))
	m.members.cursor = clamp(m.members.cursor, len(m.snapshot.Members))
	m.circ.clampTo(m.desk)
}

// renderMain renders the standard three-part layout: header, command bar,
// view content, and a status line when an action just finished.
func (m Model) renderMain() string {
	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderCommandBar())

	switch m.currentView {
	case ViewBooks:
		sections = append(sections, m.renderBooks())
	case ViewMembers:
		sections = append(sections, m.renderMembers())
	case ViewCirculation:
		sections = append(sections, m.renderCirculation())
	default:
		sections = append(sections, m.renderDashboard())
	}

	if m.status != "" {
		styles := m.theme.Styles()
		line := styles.InfoText.Render(m.status)
		if m.statusErr {
			line = styles.DangerText.Render(m.status)
		}
		sections = append(sections, line)
	}

	out := ""
	for i, s := range sections {
		if i > 0 {
			out += "\n"
		}
		out += s
	}
	return out
}

// Messages

type snapshotMsg state.Snapshot

type statusMsg struct {
	text  string
	isErr bool
}

type deskMsg struct{ err error }

// Commands

func (m Model) refreshCatalogCmd() tea.Cmd {
	ctx, client, store := m.ctx, m.client, m.store
	return func() tea.Msg {
		books, berr := client.ListBooks(ctx)
		members, merr := client.ListMembers(ctx)
		if berr != nil {
			store.Update(nil, nil, berr)
		} else if merr != nil {
			store.Update(nil, nil, merr)
		} else {
			store.Update(books, members, nil)
		}
		return snapshotMsg(store.Snapshot())
	}
}

func (m Model) refreshBooksCmd() tea.Cmd {
	ctx, client, store := m.ctx, m.client, m.store
	return func() tea.Msg {
		books, err := client.ListBooks(ctx)
		store.SetBooks(books, err)
		return snapshotMsg(store.Snapshot())
	}
}

func (m Model) refreshMembersCmd() tea.Cmd {
	ctx, client, store := m.ctx, m.client, m.store
	return func() tea.Msg {
		members, err := client.ListMembers(ctx)
		store.SetMembers(members, err)
		return snapshotMsg(store.Snapshot())
	}
}

func (m Model) deskLoadCmd() tea.Cmd {
	ctx, desk := m.ctx, m.desk
	return func() tea.Msg {
		return deskMsg{err: desk.Load(ctx)}
	}
}

func (m Model) deskSelectMemberCmd(memberID int64) tea.Cmd {
	ctx, desk := m.ctx, m.desk
	return func() tea.Msg {
		return deskMsg{err: desk.SelectMember(ctx, memberID)}
	}
}

func (m Model) deskModeCmd(mode circulation.Mode) tea.Cmd {
	ctx, desk := m.ctx, m.desk
	return func() tea.Msg {
		return deskMsg{err: desk.SetMode(ctx, mode)}
	}
}

func (m Model) deskBorrowCmd() tea.Cmd {
	ctx, desk := m.ctx, m.desk
	return func() tea.Msg {
		desk.Borrow(ctx)
		return deskMsg{}
	}
}

func (m Model) deskReturnCmd(borrowingID int64) tea.Cmd {
	ctx, desk := m.ctx, m.desk
	return func() tea.Msg {
		desk.Return(ctx, borrowingID)
		return deskMsg{}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	return err
}
