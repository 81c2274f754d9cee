// Package pipeline runs one detection pass: fetch time-ordered detections,
// scan them for duplicate reads, resolve each match into a correction, and
// replace the stored correction set.
//
// Every store call is bounded by its own timeout and never retried. A failed
// replace leaves the previous correction set in place.
package pipeline
