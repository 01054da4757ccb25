// Package app wires the circdesk pieces together: it loads configuration,
// opens the log file, builds the API client, the snapshot store, and the
// circulation desk, performs the initial catalog fetch, and hands everything
// to the UI. The binary in cmd/circdesk is a thin flag-parsing shell around
// Run.
package app
