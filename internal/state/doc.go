// Package state provides the thread-safe catalog store shared between fetch
// commands and the render loop.
//
// The Store holds one Snapshot: the latest book and member collections plus
// the time and outcome of the last fetch. Writers replace collections
// wholesale (there is no incremental update - the client's consistency
// strategy is re-fetch after every mutation), and a failed fetch keeps the
// previous data while recording the error so the header can surface it.
//
// Both Update and Snapshot copy slices defensively; readers can never mutate
// what the store holds and vice versa. The collections are small (a desk
// client, not a data plane), so copying is cheaper than any sharing scheme.
//
// There is no background poller. Fetches happen on startup, on entering a
// view, after mutations, and on manual reload - the control flow stays
// event-driven.
package state
