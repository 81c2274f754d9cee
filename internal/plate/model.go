package plate

import (
	"strings"
	"time"
)

// TimeLayout is the wall-clock format detections are stored and exchanged in.
// Sub-second precision is neither stored nor compared.
const TimeLayout = "2006-01-02 15:04:05"

// Detection is a single time-stamped plate read.
type Detection struct {
	ID        int64
	Timestamp time.Time
	Plate     string
}

// Match pairs two detections that likely describe the same physical plate.
// First never comes after Second and the two plates always differ.
type Match struct {
	First      Detection
	Second     Detection
	Similarity float64
}

// Gap returns the time between the two reads.
func (m Match) Gap() time.Duration {
	return m.Second.Timestamp.Sub(m.First.Timestamp)
}

// CorrectionType classifies the discrepancy between two matched plates.
type CorrectionType string

const (
	CorrectionMissingChars CorrectionType = "missing_chars"
	CorrectionAddedChars   CorrectionType = "added_chars"
	CorrectionCharSwap     CorrectionType = "char_swap"
	CorrectionUnknown      CorrectionType = "unknown"
)

// CorrectionTypes lists every classification in display order.
func CorrectionTypes() []CorrectionType {
	return []CorrectionType{
		CorrectionMissingChars,
		CorrectionAddedChars,
		CorrectionCharSwap,
		CorrectionUnknown,
	}
}

// ParseCorrectionType maps a stored value back to a CorrectionType. Values it
// does not recognise become CorrectionUnknown.
func ParseCorrectionType(value string) CorrectionType {
	switch CorrectionType(strings.ToLower(strings.TrimSpace(value))) {
	case CorrectionMissingChars:
		return CorrectionMissingChars
	case CorrectionAddedChars:
		return CorrectionAddedChars
	case CorrectionCharSwap:
		return CorrectionCharSwap
	default:
		return CorrectionUnknown
	}
}

// Correction is the best-guess reading derived from one match.
type Correction struct {
	OriginalDetectionID int64
	Timestamp           time.Time
	OriginalPlate       string
	CorrectedPlate      string
	Confidence          int
	Type                CorrectionType
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a TimeLayout timestamp as UTC.
func ParseTime(value string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, strings.TrimSpace(value), time.UTC)
}
