package api

import (
	"strings"
	"time"
)

// The backend serializes all dates as LocalDate strings.
const dateLayout = "2006-01-02"

// Book describes one title in the catalog. Quantity is the number of copies
// the library owns; AvailableQuantity is how many are currently on the shelf.
// The backend maintains 0 <= availableQuantity <= quantity; the client never
// enforces it.
type Book struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Author            string `json:"author"`
	ISBN              string `json:"isbn"`
	Publisher         string `json:"publisher"`
	PublicationYear   int    `json:"publicationYear"`
	Quantity          int    `json:"quantity"`
	AvailableQuantity int    `json:"availableQuantity"`
}

// BookDraft carries the editable book fields for create and update calls.
type BookDraft struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Publisher       string `json:"publisher"`
	PublicationYear int    `json:"publicationYear,omitempty"`
	Quantity        int    `json:"quantity,omitempty"`
}

// Member describes a registered library member. RegistrationDate is assigned
// at creation and immutable afterwards.
type Member struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	RegistrationDate string `json:"registrationDate"`
}

// ParsedRegistrationDate returns the registration date, or the zero time when
// the field is missing or malformed.
func (m Member) ParsedRegistrationDate() time.Time {
	return parseDate(m.RegistrationDate)
}

// MemberDraft carries the editable member fields for create and update calls.
// RegistrationDate is filled in by CreateMember and must stay empty on updates.
type MemberDraft struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	RegistrationDate string `json:"registrationDate,omitempty"`
}

// Borrowing links one member to one book copy for a bounded period. It is
// created by a borrow action and closed by a return action; the client only
// requests those transitions, it never mutates a borrowing directly.
type Borrowing struct {
	ID         int64   `json:"id"`
	Member     Member  `json:"member"`
	Book       Book    `json:"book"`
	BorrowedAt string  `json:"borrowedAt"`
	DueAt      string  `json:"dueAt"`
	ReturnedAt *string `json:"returnedAt"`
	FineCents  int64   `json:"fineCents"`
}

// Active reports whether the borrowing is still open.
func (b Borrowing) Active() bool {
	return b.ReturnedAt == nil || strings.TrimSpace(*b.ReturnedAt) == ""
}

// Overdue reports whether the borrowing is open past its due date. The fine
// itself is computed server-side at return time.
func (b Borrowing) Overdue(now time.Time) bool {
	due := b.ParsedDueAt()
	if due.IsZero() || !b.Active() {
		return false
	}
	return now.After(due.AddDate(0, 0, 1))
}

// ParsedBorrowedAt returns the borrow date, or the zero time when malformed.
func (b Borrowing) ParsedBorrowedAt() time.Time {
	return parseDate(b.BorrowedAt)
}

// ParsedDueAt returns the due date, or the zero time when malformed.
func (b Borrowing) ParsedDueAt() time.Time {
	return parseDate(b.DueAt)
}

// FormatDate renders t in the backend's date form (yyyy-MM-dd).
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func parseDate(value string) time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// borrowRequest is the body of a borrow call.
type borrowRequest struct {
	MemberID int64 `json:"memberId"`
	BookID   int64 `json:"bookId"`
}
