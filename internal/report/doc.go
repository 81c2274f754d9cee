// Package report turns matches, corrections, and summaries into display rows.
//
// Rows are plain [][]string so any renderer can consume them; the CLI draws
// them as tables.
package report
