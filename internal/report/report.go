package report

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	lev "github.com/agnivade/levenshtein"
	"github.com/dustin/go-humanize"

	"platefix/internal/pipeline"
	"platefix/internal/plate"
	"platefix/internal/store"
)

// Alignment marks how a column should be aligned.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table is a header, its rows, and per-column alignment.
type Table struct {
	Headers []string
	Rows    [][]string
	Aligns  []Alignment
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Matches lists matched pairs with their similarity and edit distance.
func Matches(matches []plate.Match) Table {
	table := Table{
		Headers: []string{"First ID", "Time", "First", "Second", "Gap", "Similarity", "Edits"},
		Aligns:  []Alignment{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight},
	}
	for _, m := range matches {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(m.First.ID, 10),
			plate.FormatTime(m.First.Timestamp),
			m.First.Plate,
			m.Second.Plate,
			formatGap(m.Gap()),
			formatPercent(m.Similarity),
			strconv.Itoa(EditDistance(m.First.Plate, m.Second.Plate)),
		})
	}
	return table
}

// Corrections lists corrections keyed by the earlier detection.
func Corrections(corrections []plate.Correction) Table {
	table := Table{
		Headers: []string{"Detection", "Time", "Original", "Corrected", "Type", "Confidence"},
		Aligns:  []Alignment{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight},
	}
	for _, c := range corrections {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(c.OriginalDetectionID, 10),
			plate.FormatTime(c.Timestamp),
			c.OriginalPlate,
			c.CorrectedPlate,
			TypeLabel(c.Type),
			strconv.Itoa(c.Confidence) + "%",
		})
	}
	return table
}

// Summary lists per-type correction counts ordered by count, then type.
func Summary(summaries []store.TypeSummary) Table {
	sorted := make([]store.TypeSummary, len(summaries))
	copy(sorted, summaries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Type < sorted[j].Type
	})

	table := Table{
		Headers: []string{"Type", "Count", "Avg Confidence"},
		Aligns:  []Alignment{AlignLeft, AlignRight, AlignRight},
	}
	for _, s := range sorted {
		table.Rows = append(table.Rows, []string{
			TypeLabel(s.Type),
			humanize.Comma(int64(s.Count)),
			formatPercent(s.AvgConfidence),
		})
	}
	return table
}

// SummarizeCorrections aggregates corrections by type without a store.
func SummarizeCorrections(corrections []plate.Correction) []store.TypeSummary {
	totals := map[plate.CorrectionType]*store.TypeSummary{}
	var order []plate.CorrectionType
	for _, c := range corrections {
		s, ok := totals[c.Type]
		if !ok {
			s = &store.TypeSummary{Type: c.Type}
			totals[c.Type] = s
			order = append(order, c.Type)
		}
		s.Count++
		s.AvgConfidence += (float64(c.Confidence) - s.AvgConfidence) / float64(s.Count)
	}
	out := make([]store.TypeSummary, 0, len(order))
	for _, t := range order {
		out = append(out, *totals[t])
	}
	return out
}

// RunLines describes a pipeline result as label/value pairs.
func RunLines(result pipeline.Result, persisted bool) [][2]string {
	lines := [][2]string{
		{"Run", result.RunID},
		{"Detections", humanize.Comma(int64(result.Detections))},
		{"Comparisons", humanize.Comma(int64(result.Comparisons))},
		{"Matches", humanize.Comma(int64(len(result.Matches)))},
	}
	if persisted {
		lines = append(lines, [2]string{"Corrections", humanize.Comma(int64(len(result.Corrections)))})
	}
	lines = append(lines, [2]string{"Elapsed", formatElapsed(result.Elapsed)})
	return lines
}

// LoadLine summarizes a CSV import.
func LoadLine(inserted int, cleared int64, path string) string {
	msg := fmt.Sprintf("Loaded %s %s from %s", humanize.Comma(int64(inserted)), pluralize(inserted, "detection"), path)
	if cleared > 0 {
		msg += fmt.Sprintf(" (replaced %s)", humanize.Comma(cleared))
	}
	return msg
}

// EditDistance is the rune-level Levenshtein distance between two plates.
func EditDistance(a, b string) int {
	return lev.ComputeDistance(a, b)
}

// TypeLabel renders a correction type for display.
func TypeLabel(t plate.CorrectionType) string {
	switch t {
	case plate.CorrectionMissingChars:
		return "Missing chars"
	case plate.CorrectionAddedChars:
		return "Added chars"
	case plate.CorrectionCharSwap:
		return "Char swap"
	default:
		return "Unknown"
	}
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

func formatGap(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d/time.Second))
	}
	return d.Truncate(time.Second).String()
}

func formatElapsed(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	return d.Round(time.Millisecond).String()
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
