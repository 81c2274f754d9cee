// Package store persists plate detections and derived corrections in SQLite.
//
// The Store plays two roles for the pipeline: it is the record store that
// hands detections back ordered by time, and the correction sink whose
// ReplaceCorrections call swaps the whole corrections table inside one
// transaction. Corrections are a recomputable view over detections, never
// history; each run replaces the previous result wholesale.
//
// A Store holds an exclusive lock file next to the database for its whole
// lifetime so two runs cannot interleave their writes. Schema changes bump
// schemaVersion; users delete the database to adopt the new schema.
package store
