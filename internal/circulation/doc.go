// Package circulation implements the borrow/return workflow.
//
// # Overview
//
// The Desk lets an operator pick a member, see that member's open
// borrowings, and either open a new borrowing or close an existing one. It
// is the only part of the client with derived state, and it contains no UI:
// the terminal layer calls its methods and renders its getters.
//
// # State machine
//
// Per member selection:
//
//	No member selected
//	    │ SelectMember(id)
//	    ▼
//	Member selected (borrowings loading)
//	    │ fetch completes
//	    ▼
//	Member selected (borrowings loaded)
//	    │ Borrow / Return        │ SelectMember(0)
//	    ▼                        ▼
//	back to loading (refresh)   No member selected
//
// Switching mode re-runs the member selection, so the tabs always resync.
//
// # Eligibility
//
// Borrowing is permitted only when a member is selected, the member has
// fewer than MaxActiveLoans open borrowings, and a book is selected. The cap
// mirrors a server-side rule; the server re-validates, and a rejection comes
// back as a normalized notice.
//
// # Consistency strategy
//
// The desk never speculatively updates its lists to reflect a mutation.
// After every successful borrow or return it re-fetches the book list and
// the member's open borrowings - two independent reads issued concurrently
// and awaited together - and swaps both in at once. This costs a round trip
// per action and in exchange eliminates display/reality divergence. The two
// reads are atomic relative to each other, not relative to the backend's
// true state; another desk can interleave.
//
// # In-flight guard
//
// A second mutating call while one is pending is rejected with a notice
// instead of being issued. Earlier revisions did not guard this; the
// double-submission window is closed here deliberately.
package circulation
