// Package main hosts the platefix CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration once, opens the SQLite
// store for commands that need it, and renders results as tables. Detection
// logic lives in internal/plate and internal/pipeline; commands here only
// wire inputs to those packages and format what comes back.
package main
