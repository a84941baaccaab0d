// Package pagination provides page arithmetic shared by the explorer and the CLI.
//
// This package contains:
//   - Window: the bounded set of page-number buttons around the current page
//   - PageMeta: "showing X to Y of Z" metadata for a result page
//   - Params and ParseSort: CLI flag parsing and validation for list requests
//
// It has no knowledge of rendering; the TUI pager and the plain CLI output both
// format the values computed here.
package pagination
