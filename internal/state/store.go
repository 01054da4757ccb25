package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/hollis/circdesk/internal/api"
)

// Snapshot is the catalog view the UI renders from: the latest successfully
// fetched book and member collections. The backend is the source of truth;
// these are transient copies replaced wholesale on every re-fetch.
type Snapshot struct {
	Books       []api.Book
	Members     []api.Member
	LastUpdated time.Time
	LastError   error
}

// AvailableCopies sums availableQuantity over the catalog.
func (s Snapshot) AvailableCopies() int {
	total := 0
	for _, b := range s.Books {
		total += b.AvailableQuantity
	}
	return total
}

// TotalCopies sums quantity over the catalog.
func (s Snapshot) TotalCopies() int {
	total := 0
	for _, b := range s.Books {
		total += b.Quantity
	}
	return total
}

// Store coordinates concurrent access to the snapshot. Fetch commands write,
// the render loop reads.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces both collections. When err is non-nil the previous data is
// kept and the error is recorded for the header to show.
func (s *Store) Update(books []api.Book, members []api.Member, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		return
	}
	s.snapshot.Books = cloneBooks(books)
	s.snapshot.Members = cloneMembers(members)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
}

// SetBooks replaces the book collection after a book mutation's re-fetch.
// On error the old list is kept and the error recorded.
func (s *Store) SetBooks(books []api.Book, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		return
	}
	s.snapshot.Books = cloneBooks(books)
	s.snapshot.LastError = nil
}

// SetMembers replaces the member collection after a member mutation's
// re-fetch. On error the old list is kept and the error recorded.
func (s *Store) SetMembers(members []api.Member, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		return
	}
	s.snapshot.Members = cloneMembers(members)
	s.snapshot.LastError = nil
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Books = cloneBooks(s.snapshot.Books)
	snap.Members = cloneMembers(s.snapshot.Members)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneBooks(books []api.Book) []api.Book {
	if len(books) == 0 {
		return nil
	}
	dup := make([]api.Book, len(books))
	copy(dup, books)
	return dup
}

func cloneMembers(members []api.Member) []api.Member {
	if len(members) == 0 {
		return nil
	}
	dup := make([]api.Member, len(members))
	copy(dup, members)
	return dup
}
