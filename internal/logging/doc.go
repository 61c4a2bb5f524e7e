// Package logging configures slog output for carrel.
//
// Two formats are supported: a compact console format for interactive use
// and JSON for log files and scripting. Attribute helpers and field
// constants keep key names consistent across components.
package logging
