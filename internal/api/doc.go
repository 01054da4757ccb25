// Package api provides the HTTP client for the library backend's REST API.
//
// # Overview
//
// The backend owns every entity and every business rule: loan limits, due
// dates, fine computation, availability bookkeeping. This package only moves
// requests and JSON; it holds no state beyond the connection settings.
//
// # Endpoints
//
// Catalog CRUD:
//
//   - GET    /books            list books
//   - POST   /books            create a book
//   - PUT    /books/{id}       update a book
//   - DELETE /books/{id}       delete a book
//   - GET    /members          list members
//   - POST   /members          create a member (client supplies registrationDate)
//   - PUT    /members/{id}     update a member
//   - DELETE /members/{id}     delete a member
//
// Circulation, under a configurable prefix (default /loans, newer backends
// use /borrow):
//
//   - GET  {prefix}/active?memberId=N   a member's open borrowings
//   - POST {prefix}/borrow              open a borrowing ({memberId, bookId})
//   - POST {prefix}/{id}/return         close a borrowing (no body)
//
// # Request handling
//
// All requests use context for cancellation, set Accept and User-Agent
// headers, and time out after 10 seconds by default. Bodies are encoded with
// json-iterator. Non-GET requests carry a generated X-Request-ID header so
// client and backend logs can be correlated. There is no retry policy: one
// attempt, and the error surfaces to the caller.
//
// # Error handling
//
// A 4xx/5xx response becomes an *Error keeping the status plus either the
// plain-text body or the message field of a JSON body. The backend is
// inconsistent about which of the two it sends, so Normalize flattens any
// failure - application-level or transport-level - into a single display
// string with a per-action fallback phrase. The UI never sees raw error
// shapes.
//
// # Testing
//
// Callers depend on the Catalog and Circulator interfaces rather than on
// *Client, so tests can substitute a fake. The client itself is tested
// against httptest servers.
package api
