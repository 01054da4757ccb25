package circulation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis/circdesk/internal/api"
)

// fakeBackend is an in-memory Backend with per-call overrides.
type fakeBackend struct {
	mu sync.Mutex

	books   []api.Book
	members []api.Member
	active  map[int64][]api.Borrowing

	borrowErr error
	returnErr error
	listErr   error
	activeErr error

	borrowFn func(memberID, bookID int64) (api.Borrowing, error)

	borrowCalls int
	activeCalls int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		books: []api.Book{
			{ID: 1, Title: "Clean Code", Quantity: 3, AvailableQuantity: 2},
			{ID: 2, Title: "Refactoring", Quantity: 2, AvailableQuantity: 0},
			{ID: 3, Title: "Out of Print", Quantity: 0, AvailableQuantity: 0},
		},
		members: []api.Member{
			{ID: 5, Name: "Ada Lovelace"},
			{ID: 6, Name: "Grace Hopper"},
		},
		active: map[int64][]api.Borrowing{},
	}
}

func (f *fakeBackend) ListBooks(context.Context) ([]api.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]api.Book(nil), f.books...), nil
}

func (f *fakeBackend) ListMembers(context.Context) ([]api.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]api.Member(nil), f.members...), nil
}

func (f *fakeBackend) ActiveBorrowings(_ context.Context, memberID int64) ([]api.Borrowing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activeCalls++
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	return append([]api.Borrowing(nil), f.active[memberID]...), nil
}

func (f *fakeBackend) Borrow(_ context.Context, memberID, bookID int64) (api.Borrowing, error) {
	if fn := f.borrowFn; fn != nil {
		return fn(memberID, bookID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.borrowCalls++
	if f.borrowErr != nil {
		return api.Borrowing{}, f.borrowErr
	}
	var book api.Book
	for _, b := range f.books {
		if b.ID == bookID {
			book = b
		}
	}
	loan := api.Borrowing{
		ID:     int64(100 + len(f.active[memberID])),
		Member: api.Member{ID: memberID},
		Book:   book,
		DueAt:  "2026-09-13",
	}
	f.active[memberID] = append(f.active[memberID], loan)
	return loan, nil
}

func (f *fakeBackend) Return(_ context.Context, borrowingID int64) (api.Borrowing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.returnErr != nil {
		return api.Borrowing{}, f.returnErr
	}
	for memberID, loans := range f.active {
		for i, loan := range loans {
			if loan.ID == borrowingID {
				f.active[memberID] = append(loans[:i], loans[i+1:]...)
				loan.FineCents = 150
				return loan, nil
			}
		}
	}
	return api.Borrowing{}, errors.New("borrowing not found")
}

func newTestDesk(t *testing.T) (*Desk, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	desk := New(backend, zerolog.Nop())
	require.NoError(t, desk.Load(context.Background()))
	return desk, backend
}

func TestDesk_SelectMember(t *testing.T) {
	desk, backend := newTestDesk(t)
	ctx := context.Background()
	backend.active[5] = []api.Borrowing{{ID: 50, Book: api.Book{Title: "Clean Code"}}}

	require.NoError(t, desk.SelectMember(ctx, 5))
	assert.Equal(t, int64(5), desk.MemberID())
	assert.Equal(t, 1, desk.ActiveCount())

	member, ok := desk.Member()
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", member.Name)

	// Clearing the member drops the borrowings and the book selection.
	desk.SelectBook(1)
	require.NoError(t, desk.SelectMember(ctx, 0))
	assert.Equal(t, int64(0), desk.MemberID())
	assert.Zero(t, desk.ActiveCount())
	assert.Zero(t, desk.SelectedBook())
	_, ok = desk.Member()
	assert.False(t, ok)
}

func TestDesk_SelectMemberFetchFailure(t *testing.T) {
	desk, backend := newTestDesk(t)
	backend.activeErr = &api.Error{Status: 500, Body: "database down"}

	err := desk.SelectMember(context.Background(), 5)
	require.Error(t, err)
	notice := desk.Notice()
	assert.True(t, notice.Err)
	assert.Equal(t, "database down", notice.Text)
}

func TestDesk_SetModeResyncsMember(t *testing.T) {
	desk, backend := newTestDesk(t)
	ctx := context.Background()

	require.NoError(t, desk.SelectMember(ctx, 5))
	calls := backend.activeCalls

	require.NoError(t, desk.SetMode(ctx, ModeReturn))
	assert.Equal(t, ModeReturn, desk.Mode())
	assert.Equal(t, calls+1, backend.activeCalls, "mode switch re-fetches borrowings")
	assert.Equal(t, int64(5), desk.MemberID())
}

func TestDesk_AvailableBooksFiltersOnQuantity(t *testing.T) {
	desk, _ := newTestDesk(t)

	titles := []string{}
	for _, b := range desk.AvailableBooks() {
		titles = append(titles, b.Title)
	}
	// A title with zero copies on the shelf but a positive owned quantity is
	// still offered; only a zero owned quantity drops it.
	assert.Equal(t, []string{"Clean Code", "Refactoring"}, titles)
}

func TestDesk_CanBorrow(t *testing.T) {
	desk, backend := newTestDesk(t)
	ctx := context.Background()

	assert.False(t, desk.CanBorrow(), "no member, no book")

	require.NoError(t, desk.SelectMember(ctx, 5))
	assert.False(t, desk.CanBorrow(), "no book selected")

	desk.SelectBook(1)
	assert.True(t, desk.CanBorrow())

	backend.active[5] = []api.Borrowing{{ID: 1}, {ID: 2}}
	require.NoError(t, desk.SelectMember(ctx, 5))
	desk.SelectBook(1)
	assert.True(t, desk.AtLoanCap())
	assert.False(t, desk.CanBorrow(), "at the loan cap")
}

func TestDesk_BorrowSuccess(t *testing.T) {
	desk, _ := newTestDesk(t)
	ctx := context.Background()

	require.NoError(t, desk.SelectMember(ctx, 5))
	desk.SelectBook(1)

	notice := desk.Borrow(ctx)
	assert.False(t, notice.Err)
	assert.Equal(t, `Borrowed "Clean Code". Due on 2026-09-13.`, notice.Text)
	assert.Equal(t, 1, desk.ActiveCount(), "refresh picked up the new loan")
	assert.Zero(t, desk.SelectedBook(), "book selection cleared after borrowing")
	assert.False(t, desk.Busy())
}

func TestDesk_BorrowRejectedKeepsSelections(t *testing.T) {
	desk, backend := newTestDesk(t)
	ctx := context.Background()

	require.NoError(t, desk.SelectMember(ctx, 5))
	desk.SelectBook(1)
	backend.borrowErr = &api.Error{Status: 409, Body: "Book unavailable"}

	notice := desk.Borrow(ctx)
	assert.True(t, notice.Err)
	assert.Equal(t, "Book unavailable", notice.Text)
	assert.Equal(t, int64(5), desk.MemberID(), "member selection survives a rejection")
	assert.Equal(t, int64(1), desk.SelectedBook(), "book selection survives a rejection")
	assert.False(t, desk.Busy())
}

func TestDesk_BorrowWithoutEligibility(t *testing.T) {
	desk, backend := newTestDesk(t)
	ctx := context.Background()

	notice := desk.Borrow(ctx)
	assert.True(t, notice.Err)
	assert.Equal(t, "Select a member and a book first.", notice.Text)
	assert.Zero(t, backend.borrowCalls, "no request issued when ineligible")
}

func TestDesk_BorrowWhileBusy(t *testing.T) {
	desk, backend := newTestDesk(t)
	ctx := context.Background()

	require.NoError(t, desk.SelectMember(ctx, 5))
	desk.SelectBook(1)

	release := make(chan struct{})
	entered := make(chan struct{})
	backend.borrowFn = func(memberID, bookID int64) (api.Borrowing, error) {
		close(entered)
		<-release
		return api.Borrowing{Book: api.Book{Title: "Clean Code"}, DueAt: "2026-09-13"}, nil
	}

	done := make(chan Notice, 1)
	go func() { done <- desk.Borrow(ctx) }()
	<-entered

	second := desk.Borrow(ctx)
	assert.True(t, second.Err)
	assert.Equal(t, "Another request is still in flight.", second.Text)

	close(release)
	first := <-done
	assert.False(t, first.Err)
}

func TestDesk_ReturnSuccess(t *testing.T) {
	desk, backend := newTestDesk(t)
	ctx := context.Background()
	backend.active[5] = []api.Borrowing{{ID: 50, Book: api.Book{Title: "Clean Code"}}}

	require.NoError(t, desk.SelectMember(ctx, 5))
	require.Equal(t, 1, desk.ActiveCount())

	notice := desk.Return(ctx, 50)
	assert.False(t, notice.Err)
	assert.Equal(t, `Returned "Clean Code". Fine: 1.50`, notice.Text)
	assert.Zero(t, desk.ActiveCount(), "refresh dropped the closed loan")
}

func TestDesk_ReturnRejected(t *testing.T) {
	desk, backend := newTestDesk(t)
	ctx := context.Background()
	backend.active[5] = []api.Borrowing{{ID: 50, Book: api.Book{Title: "Clean Code"}}}

	require.NoError(t, desk.SelectMember(ctx, 5))
	backend.returnErr = errors.New("connection reset")

	notice := desk.Return(ctx, 50)
	assert.True(t, notice.Err)
	assert.Equal(t, "connection reset", notice.Text)
	assert.Equal(t, 1, desk.ActiveCount(), "stale list kept on failure")
}

func TestDesk_RefreshFailureKeepsStaleLists(t *testing.T) {
	desk, backend := newTestDesk(t)
	ctx := context.Background()

	require.NoError(t, desk.SelectMember(ctx, 5))
	desk.SelectBook(1)
	backend.listErr = errors.New("catalog fetch failed")

	notice := desk.Borrow(ctx)
	assert.False(t, notice.Err, "the borrow itself succeeded")
	assert.NotEmpty(t, desk.AvailableBooks(), "previous book list survives a failed refresh")
}

func TestFineText(t *testing.T) {
	assert.Equal(t, "No fine.", FineText(0))
	assert.Equal(t, "No fine.", FineText(-10))
	assert.Equal(t, "Fine: 1.50", FineText(150))
	assert.Equal(t, "Fine: 0.05", FineText(5))
	assert.Equal(t, "Fine: 20.00", FineText(2000))
}

// TestDesk_AgainstHTTPBackend drives the desk through the real client against
// an httptest server, covering the full borrow round trip including the
// post-borrow double fetch.
func TestDesk_AgainstHTTPBackend(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	borrowed := false

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/members":
			_ = json.NewEncoder(w).Encode([]api.Member{{ID: 5, Name: "Ada Lovelace"}})
		case r.URL.Path == "/books":
			available := 2
			if borrowed {
				available = 1
			}
			_ = json.NewEncoder(w).Encode([]api.Book{
				{ID: 1, Title: "Clean Code", Quantity: 3, AvailableQuantity: available},
			})
		case r.URL.Path == "/loans/active":
			loans := []api.Borrowing{}
			if borrowed {
				loans = append(loans, api.Borrowing{ID: 70, Book: api.Book{ID: 1, Title: "Clean Code"}, DueAt: "2026-09-13"})
			}
			_ = json.NewEncoder(w).Encode(loans)
		case r.URL.Path == "/loans/borrow" && r.Method == http.MethodPost:
			borrowed = true
			_ = json.NewEncoder(w).Encode(api.Borrowing{ID: 70, Book: api.Book{ID: 1, Title: "Clean Code"}, DueAt: "2026-09-13"})
		case r.URL.Path == "/loans/70/return" && r.Method == http.MethodPost:
			borrowed = false
			_ = json.NewEncoder(w).Encode(api.Borrowing{ID: 70, Book: api.Book{ID: 1, Title: "Clean Code"}, FineCents: 0})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	client, err := api.NewClient(server.URL)
	require.NoError(t, err)

	desk := New(client, zerolog.Nop())
	ctx := context.Background()
	require.NoError(t, desk.Load(ctx))
	require.NoError(t, desk.SelectMember(ctx, 5))
	desk.SelectBook(1)

	notice := desk.Borrow(ctx)
	require.False(t, notice.Err, "borrow notice: %s", notice.Text)
	assert.Equal(t, `Borrowed "Clean Code". Due on 2026-09-13.`, notice.Text)
	assert.Equal(t, 1, desk.ActiveCount())

	notice = desk.Return(ctx, 70)
	require.False(t, notice.Err, "return notice: %s", notice.Text)
	assert.Equal(t, fmt.Sprintf("Returned %q. No fine.", "Clean Code"), notice.Text)
	assert.Zero(t, desk.ActiveCount())
}
