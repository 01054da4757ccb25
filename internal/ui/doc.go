// Package ui implements the terminal interface for circdesk using Bubble Tea.
//
// # Layout
//
// The interface is a single full-screen program with four views selected by
// one-letter keys:
//
//   - Dashboard (d): catalog-wide figures from the last fetched snapshot.
//   - Books (b): the catalog table with add, edit, and delete forms.
//   - Members (m): the member roster with the same form workflow.
//   - Circulation (c): the borrow/return desk, split into a member picker
//     pane and an action pane that follows the desk mode.
//
// Every view renders below a shared header (connection target, collection
// counts, staleness indicator) and a command bar listing the keys that apply
// to the current view.
//
// # Data flow
//
// The model never talks to the network inside Update. Key handlers return
// tea.Cmd closures that call the API client or the circulation desk off the
// UI goroutine and deliver one of three messages back:
//
//   - snapshotMsg: a fresh state.Snapshot after a list fetch.
//   - statusMsg: the outcome of a mutation, already phrased for display.
//   - deskMsg: the outcome of a circulation desk call; the desk carries its
//     own notice text, so the message only transports a transport error.
//
// Mutations are always followed by a re-fetch of the affected collection;
// rendered rows come from the server, never from a locally patched copy.
package ui
