package store

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
	// ErrLocked indicates another process holds the database lock.
	ErrLocked = errors.New("database is locked by another platefix process")
	// ErrMalformedTimestamp indicates a stored timestamp does not parse under plate.TimeLayout.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)

// TimestampError reports the detection whose stored timestamp failed to parse.
type TimestampError struct {
	DetectionID int64
	Raw         string
	Err         error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("detection %d: %v %q: %v", e.DetectionID, ErrMalformedTimestamp, e.Raw, e.Err)
}

func (e *TimestampError) Unwrap() []error {
	return []error{ErrMalformedTimestamp, e.Err}
}
