// Package output renders command reports for display or machine consumption.
//
// Two formats are supported:
//   - text: human-readable terminal output with a colored status marker and
//     a table for repository listings (default)
//   - json: the full structured report
//
// Use [GetWriter] to obtain a [Writer] for a format string, or [WriteReport]
// to pick the destination (a file path or stdout) as well.
package output
