// Package config loads and validates carrel's TOML configuration.
//
// Configuration resolves from an explicit --config path or the default
// location under ~/.config/carrel. Absent files are not an error: defaults
// apply, which keeps first runs zero-setup. Path fields are tilde-expanded
// and absolute after Load.
package config
