// Package logging assembles structured slog loggers and formatting helpers used
// across platefix.
//
// It owns the configurable console/JSON handlers and the context-aware helpers
// that tag log lines with the run identifier and component. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape as the rest of the system.
package logging
