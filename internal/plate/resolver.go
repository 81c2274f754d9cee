package plate

import (
	"math"
	"unicode/utf8"
)

// Classify names the discrepancy between two plates by comparing their
// lengths only.
func Classify(first, second string) CorrectionType {
	a, b := utf8.RuneCountInString(first), utf8.RuneCountInString(second)
	switch {
	case a > b:
		return CorrectionMissingChars
	case a < b:
		return CorrectionAddedChars
	default:
		return CorrectionCharSwap
	}
}

// PreferredPlate returns whichever plate is not shorter, keeping first on a
// tie. The longer read is assumed to have lost nothing.
func PreferredPlate(first, second string) string {
	if utf8.RuneCountInString(first) >= utf8.RuneCountInString(second) {
		return first
	}
	return second
}

// Confidence truncates a similarity percentage to an integer in [0, 100].
func Confidence(similarity float64) int {
	if math.IsNaN(similarity) || similarity <= 0 {
		return 0
	}
	if similarity >= 100 {
		return 100
	}
	return int(similarity)
}

// Resolve derives the correction for a match. The correction is keyed to the
// earlier detection.
func Resolve(m Match) Correction {
	return Correction{
		OriginalDetectionID: m.First.ID,
		Timestamp:           m.First.Timestamp,
		OriginalPlate:       m.First.Plate,
		CorrectedPlate:      PreferredPlate(m.First.Plate, m.Second.Plate),
		Confidence:          Confidence(m.Similarity),
		Type:                Classify(m.First.Plate, m.Second.Plate),
	}
}

// ResolveAll resolves every match in order, notifying observer after each.
// observer may be nil.
func ResolveAll(matches []Match, observer Observer) []Correction {
	if observer == nil {
		observer = NopObserver{}
	}
	corrections := make([]Correction, 0, len(matches))
	for _, m := range matches {
		c := Resolve(m)
		corrections = append(corrections, c)
		observer.CorrectionResolved(m, c)
	}
	return corrections
}
