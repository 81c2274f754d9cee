// Package preflight provides readiness checks for the filesystem paths and
// database that platefix depends on.
//
// The CLI "platefix doctor" command runs RunAll and prints one line per
// check. Individual checks are exported so callers can run a subset.
package preflight
