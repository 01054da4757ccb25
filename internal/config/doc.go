// Package config handles loading and persisting the circdesk configuration.
//
// # Configuration discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/circdesk/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are empty, use defaults per field
//
// # Defaults
//
//   - base_url:      http://localhost:8080
//   - borrow_prefix: /loans   (newer backend revisions serve /borrow)
//   - log_file:      ~/.local/state/circdesk/circdesk.log
//   - log_level:     info
//   - theme:         Dracula
//
// Example config.toml:
//
//	base_url = "http://localhost:8080"
//	borrow_prefix = "/borrow"
//	theme = "Nord"
//
// Tilde expansion is applied to the config and log file paths. A missing
// config file is not an error; circdesk works out of the box against a
// backend on the default local address.
//
// Save writes the struct back to disk and exists so the theme picked at
// runtime survives restarts.
package config
