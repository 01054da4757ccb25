package state

import (
	"errors"
	"testing"

	"github.com/hollis/circdesk/internal/api"
)

func TestStore_UpdateAndSnapshot(t *testing.T) {
	store := &Store{}

	books := []api.Book{{ID: 1, Title: "Clean Code", Quantity: 3, AvailableQuantity: 2}}
	members := []api.Member{{ID: 5, Name: "Ada Lovelace"}}
	store.Update(books, members, nil)

	snap := store.Snapshot()
	if len(snap.Books) != 1 || snap.Books[0].Title != "Clean Code" {
		t.Fatalf("books = %#v, want Clean Code", snap.Books)
	}
	if len(snap.Members) != 1 || snap.Members[0].Name != "Ada Lovelace" {
		t.Fatalf("members = %#v, want Ada Lovelace", snap.Members)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
	if snap.LastUpdated.IsZero() {
		t.Fatal("LastUpdated not set")
	}

	// Mutating the returned slices must not affect later snapshots.
	snap.Books[0].Title = "mutated"
	if got := store.Snapshot().Books[0].Title; got != "Clean Code" {
		t.Fatalf("snapshot shared backing array: title = %q", got)
	}
}

func TestStore_UpdateKeepsOldDataOnError(t *testing.T) {
	store := &Store{}
	store.Update([]api.Book{{ID: 1, Title: "Clean Code"}}, []api.Member{{ID: 5}}, nil)

	fetchErr := errors.New("connection refused")
	store.Update(nil, nil, fetchErr)

	snap := store.Snapshot()
	if len(snap.Books) != 1 || len(snap.Members) != 1 {
		t.Fatalf("previous data dropped on error: %#v", snap)
	}
	if snap.LastError == nil || !errors.Is(snap.LastError, fetchErr) {
		t.Fatalf("LastError = %v, want wrapped %v", snap.LastError, fetchErr)
	}
}

func TestStore_SetBooksAndSetMembers(t *testing.T) {
	store := &Store{}
	store.Update(
		[]api.Book{{ID: 1, Title: "Clean Code"}},
		[]api.Member{{ID: 5, Name: "Ada Lovelace"}},
		nil,
	)

	store.SetBooks([]api.Book{{ID: 2, Title: "Refactoring"}}, nil)
	snap := store.Snapshot()
	if len(snap.Books) != 1 || snap.Books[0].Title != "Refactoring" {
		t.Fatalf("books = %#v, want Refactoring", snap.Books)
	}
	if len(snap.Members) != 1 {
		t.Fatalf("members replaced by SetBooks: %#v", snap.Members)
	}

	store.SetMembers(nil, errors.New("fetch failed"))
	snap = store.Snapshot()
	if len(snap.Members) != 1 || snap.Members[0].Name != "Ada Lovelace" {
		t.Fatalf("members dropped on failed re-fetch: %#v", snap.Members)
	}
	if snap.LastError == nil {
		t.Fatal("LastError not recorded")
	}

	store.SetMembers([]api.Member{{ID: 6, Name: "Grace Hopper"}}, nil)
	snap = store.Snapshot()
	if snap.LastError != nil {
		t.Fatalf("LastError not cleared after success: %v", snap.LastError)
	}
	if len(snap.Members) != 1 || snap.Members[0].Name != "Grace Hopper" {
		t.Fatalf("members = %#v, want Grace Hopper", snap.Members)
	}
}

func TestSnapshot_CopyCounts(t *testing.T) {
	snap := Snapshot{Books: []api.Book{
		{Quantity: 3, AvailableQuantity: 2},
		{Quantity: 2, AvailableQuantity: 0},
	}}
	if got := snap.TotalCopies(); got != 5 {
		t.Fatalf("TotalCopies = %d, want 5", got)
	}
	if got := snap.AvailableCopies(); got != 2 {
		t.Fatalf("AvailableCopies = %d, want 2", got)
	}
}
