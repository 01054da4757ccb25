package circulation

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hollis/circdesk/internal/api"
)

// Mode selects which half of the desk is active.
type Mode int

const (
	ModeBorrow Mode = iota
	ModeReturn
)

func (m Mode) String() string {
	if m == ModeReturn {
		return "return"
	}
	return "borrow"
}

// MaxActiveLoans is the advisory concurrent-loan cap. It mirrors a backend
// rule and only gates the UI; the server re-validates every borrow.
const MaxActiveLoans = 2

// Backend is the slice of the API the desk needs. *api.Client satisfies it.
type Backend interface {
	ListBooks(ctx context.Context) ([]api.Book, error)
	ListMembers(ctx context.Context) ([]api.Member, error)
	ActiveBorrowings(ctx context.Context, memberID int64) ([]api.Borrowing, error)
	Borrow(ctx context.Context, memberID, bookID int64) (api.Borrowing, error)
	Return(ctx context.Context, borrowingID int64) (api.Borrowing, error)
}

var _ Backend = (*api.Client)(nil)

// Notice is the transient status line produced by a desk action. It replaces
// the global alert dialogs of earlier revisions so the workflow stays
// testable without a UI.
type Notice struct {
	Text string
	Err  bool
}

// Zero reports whether the notice is empty.
func (n Notice) Zero() bool { return n.Text == "" }

// Desk holds the borrow/return workflow state for one operator session: the
// selected member, the mode, that member's open borrowings, the selected
// book, and the last notice. It owns private copies of the catalog lists and
// re-fetches them after every mutation instead of updating them in place.
type Desk struct {
	mu      sync.Mutex
	backend Backend
	log     zerolog.Logger

	members  []api.Member
	books    []api.Book
	memberID int64 // 0 = no member selected
	mode     Mode
	active   []api.Borrowing
	bookID   int64 // 0 = no book selected
	notice   Notice
	busy     bool
}

// New creates a Desk backed by the given API.
func New(backend Backend, log zerolog.Logger) *Desk {
	return &Desk{backend: backend, log: log}
}

// Load fetches the member and book lists. It is called once when the desk
// screen is entered.
func (d *Desk) Load(ctx context.Context) error {
	members, err := d.backend.ListMembers(ctx)
	if err != nil {
		return fmt.Errorf("load members: %w", err)
	}
	books, err := d.backend.ListBooks(ctx)
	if err != nil {
		return fmt.Errorf("load books: %w", err)
	}
	d.mu.Lock()
	d.members = members
	d.books = books
	d.mu.Unlock()
	return nil
}

// SelectMember switches the desk to the given member (0 clears the
// selection). The notice and book selection are always cleared; the member's
// open borrowings are fetched when a member is chosen and emptied otherwise.
func (d *Desk) SelectMember(ctx context.Context, memberID int64) error {
	d.mu.Lock()
	d.notice = Notice{}
	d.bookID = 0
	d.memberID = memberID
	if memberID == 0 {
		d.active = nil
		d.mu.Unlock()
		return nil
	}
	d.mu.Unlock()

	active, err := d.backend.ActiveBorrowings(ctx, memberID)
	if err != nil {
		d.log.Error().Err(err).Int64("member", memberID).Msg("active borrowings fetch failed")
		d.setNotice(Notice{Text: api.Normalize(err, "Could not load borrowings."), Err: true})
		return err
	}
	d.mu.Lock()
	// A slow response for a member who is no longer selected must not
	// overwrite the current member's list.
	if d.memberID == memberID {
		d.active = active
	}
	d.mu.Unlock()
	return nil
}

// SetMode switches between borrowing and returning. Switching re-synchronizes
// the member state exactly like re-selecting the member.
func (d *Desk) SetMode(ctx context.Context, mode Mode) error {
	d.mu.Lock()
	d.mode = mode
	memberID := d.memberID
	d.mu.Unlock()
	return d.SelectMember(ctx, memberID)
}

// SelectBook marks a book for the next borrow (0 clears the selection).
func (d *Desk) SelectBook(bookID int64) {
	d.mu.Lock()
	d.bookID = bookID
	d.mu.Unlock()
}

// Member returns the selected member, if any.
func (d *Desk) Member() (api.Member, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.memberID == 0 {
		return api.Member{}, false
	}
	for _, m := range d.members {
		if m.ID == d.memberID {
			return m, true
		}
	}
	return api.Member{ID: d.memberID}, true
}

// MemberID returns the selected member's ID, or 0.
func (d *Desk) MemberID() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.memberID
}

// Mode returns the current desk mode.
func (d *Desk) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// Members returns a copy of the member list.
func (d *Desk) Members() []api.Member {
	d.mu.Lock()
	defer d.mu.Unlock()
	return cloneMembers(d.members)
}

// Active returns a copy of the selected member's open borrowings.
func (d *Desk) Active() []api.Borrowing {
	d.mu.Lock()
	defer d.mu.Unlock()
	return cloneBorrowings(d.active)
}

// ActiveCount returns the number of open borrowings for the selected member.
func (d *Desk) ActiveCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.active)
}

// AtLoanCap reports whether the selected member has reached the loan cap.
func (d *Desk) AtLoanCap() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.active) >= MaxActiveLoans
}

// SelectedBook returns the marked book's ID, or 0.
func (d *Desk) SelectedBook() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bookID
}

// Notice returns the last action's status line.
func (d *Desk) Notice() Notice {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.notice
}

// Busy reports whether a mutating request is in flight.
func (d *Desk) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

// AvailableBooks returns the subset of the catalog that can be offered for
// borrowing. The filter uses the total quantity field, not availableQuantity;
// the list is advisory either way and the backend re-checks at borrow time.
func (d *Desk) AvailableBooks() []api.Book {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]api.Book, 0, len(d.books))
	for _, b := range d.books {
		if b.Quantity > 0 {
			out = append(out, b)
		}
	}
	return out
}

// CanBorrow reports whether the borrow action is currently permitted: a
// member is selected, the member is under the loan cap, and a book is
// selected. This check is a convenience filter; the server is authoritative.
func (d *Desk) CanBorrow() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.canBorrowLocked()
}

func (d *Desk) canBorrowLocked() bool {
	return d.memberID != 0 && len(d.active) < MaxActiveLoans && d.bookID != 0
}

// Borrow opens a new borrowing for the selected member and book. On success
// the notice carries the due date, the book list and open borrowings are
// re-fetched together, and the book selection is cleared. On failure the
// normalized error becomes the notice and every selection stays intact so
// the operator can retry.
func (d *Desk) Borrow(ctx context.Context) Notice {
	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return d.setNotice(Notice{Text: "Another request is still in flight.", Err: true})
	}
	if !d.canBorrowLocked() {
		d.mu.Unlock()
		return d.setNotice(Notice{Text: "Select a member and a book first.", Err: true})
	}
	memberID, bookID := d.memberID, d.bookID
	d.busy = true
	d.notice = Notice{}
	d.mu.Unlock()
	defer d.clearBusy()

	loan, err := d.backend.Borrow(ctx, memberID, bookID)
	if err != nil {
		d.log.Error().Err(err).Int64("member", memberID).Int64("book", bookID).Msg("borrow failed")
		return d.setNotice(Notice{Text: api.Normalize(err, "Borrow failed."), Err: true})
	}

	notice := Notice{Text: fmt.Sprintf("Borrowed %q. Due on %s.", loan.Book.Title, loan.DueAt)}
	d.log.Info().Int64("member", memberID).Int64("book", bookID).Str("due", loan.DueAt).Msg("borrowed")
	d.refresh(ctx, memberID)

	d.mu.Lock()
	d.bookID = 0
	d.notice = notice
	d.mu.Unlock()
	return notice
}

// Return closes the given borrowing. On success the notice carries the fine
// display and the same two-list refresh runs; on failure the normalized error
// becomes the notice and state is untouched.
func (d *Desk) Return(ctx context.Context, borrowingID int64) Notice {
	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return d.setNotice(Notice{Text: "Another request is still in flight.", Err: true})
	}
	memberID := d.memberID
	d.busy = true
	d.notice = Notice{}
	d.mu.Unlock()
	defer d.clearBusy()

	loan, err := d.backend.Return(ctx, borrowingID)
	if err != nil {
		d.log.Error().Err(err).Int64("borrowing", borrowingID).Msg("return failed")
		return d.setNotice(Notice{Text: api.Normalize(err, "Return failed."), Err: true})
	}

	notice := Notice{Text: fmt.Sprintf("Returned %q. %s", loan.Book.Title, FineText(loan.FineCents))}
	d.log.Info().Int64("borrowing", borrowingID).Int64("fine_cents", loan.FineCents).Msg("returned")
	d.refresh(ctx, memberID)

	return d.setNotice(notice)
}

// refresh re-fetches the book list and the member's open borrowings. The two
// reads run concurrently and both results are applied together, so the lists
// swap into view atomically relative to each other. Stale lists are kept on
// failure; the next action re-fetches anyway.
func (d *Desk) refresh(ctx context.Context, memberID int64) {
	var (
		books  []api.Book
		active []api.Borrowing
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		books, err = d.backend.ListBooks(gctx)
		return err
	})
	g.Go(func() error {
		if memberID == 0 {
			return nil
		}
		var err error
		active, err = d.backend.ActiveBorrowings(gctx, memberID)
		return err
	})
	if err := g.Wait(); err != nil {
		d.log.Warn().Err(err).Msg("post-action refresh failed")
		return
	}

	d.mu.Lock()
	d.books = books
	if d.memberID == memberID {
		d.active = active
	}
	d.mu.Unlock()
}

func (d *Desk) setNotice(n Notice) Notice {
	d.mu.Lock()
	d.notice = n
	d.mu.Unlock()
	return n
}

func (d *Desk) clearBusy() {
	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()
}

// FineText renders a fine amount for display. Zero is shown as "No fine."
// rather than a zero currency amount.
func FineText(cents int64) string {
	if cents <= 0 {
		return "No fine."
	}
	return fmt.Sprintf("Fine: %.2f", float64(cents)/100)
}

func cloneMembers(members []api.Member) []api.Member {
	if len(members) == 0 {
		return nil
	}
	dup := make([]api.Member, len(members))
	copy(dup, members)
	return dup
}

func cloneBorrowings(borrowings []api.Borrowing) []api.Borrowing {
	if len(borrowings) == 0 {
		return nil
	}
	dup := make([]api.Borrowing, len(borrowings))
	copy(dup, borrowings)
	return dup
}
