package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hollis/circdesk/internal/api"
	"github.com/hollis/circdesk/internal/circulation"
)

// stubBackend feeds the desk a minimal catalog for render tests.
type stubBackend struct{}

func (stubBackend) ListBooks(context.Context) ([]api.Book, error) {
	return []api.Book{{ID: 1, Title: "Clean Code", Author: "Martin", Quantity: 3}}, nil
}

func (stubBackend) ListMembers(context.Context) ([]api.Member, error) {
	return []api.Member{{ID: 5, Name: "Ada Lovelace"}}, nil
}

func (stubBackend) ActiveBorrowings(context.Context, int64) ([]api.Borrowing, error) {
	return nil, nil
}

func (stubBackend) Borrow(context.Context, int64, int64) (api.Borrowing, error) {
	return api.Borrowing{}, nil
}

func (stubBackend) Return(context.Context, int64) (api.Borrowing, error) {
	return api.Borrowing{}, nil
}

// Display strings stick to plain ASCII separators so rendering stays
// predictable on terminals with limited fonts and for width math.
func TestRenderedSeparatorsArePlainASCII(t *testing.T) {
	desk := circulation.New(stubBackend{}, zerolog.Nop())
	ctx := context.Background()
	if err := desk.Load(ctx); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if err := desk.SelectMember(ctx, 5); err != nil {
		t.Fatalf("SelectMember returned error: %v", err)
	}

	m := New(Options{Desk: desk})
	m.width, m.height = 100, 40

	pane := m.renderBorrowPane()
	if !strings.Contains(pane, "Clean Code - Martin") {
		t.Fatalf("borrow row missing plain title - author separator:\n%s", pane)
	}

	dash := m.renderDashboard()
	if !strings.Contains(dash, "n/a") {
		t.Fatalf("dashboard missing n/a placeholder:\n%s", dash)
	}

	for _, out := range []string{pane, dash} {
		if strings.ContainsRune(out, '\u2014') {
			t.Fatalf("typographic dash in rendered output:\n%s", out)
		}
	}
}
