package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"

	"platefix/internal/plate"
)

const (
	headerTimestamp = "DateTime"
	headerPlate     = "LicensePlate"
)

// ErrMissingHeader indicates the first row is not DateTime,LicensePlate.
var ErrMissingHeader = errors.New("missing DateTime,LicensePlate header")

// Record is a CSV row before it is stored and assigned an id.
type Record struct {
	Timestamp time.Time
	Plate     string
}

// Detection converts the record into an unsaved detection.
func (r Record) Detection() plate.Detection {
	return plate.Detection{Timestamp: r.Timestamp, Plate: r.Plate}
}

// RowError reports a CSV row that could not be parsed.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Options controls how rows are interpreted.
type Options struct {
	// NormalizePlates folds full-width characters, upper-cases, and strips
	// spaces and dashes from every plate.
	NormalizePlates bool
}

// ReadCSVFile opens path and parses it with ReadCSV.
func ReadCSVFile(path string, opts Options) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, opts)
}

// ReadCSV parses DateTime,LicensePlate rows. Header columns may appear in
// either order; extra columns are ignored. The first bad row aborts the read.
func ReadCSV(r io.Reader, opts Options) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	tsCol, plateCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case headerTimestamp:
			tsCol = i
		case headerPlate:
			plateCol = i
		}
	}
	if tsCol < 0 || plateCol < 0 {
		return nil, fmt.Errorf("%w: got %q", ErrMissingHeader, strings.Join(header, ","))
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		if len(row) <= max(tsCol, plateCol) {
			return nil, &RowError{Line: line, Err: fmt.Errorf("expected at least %d columns, got %d", max(tsCol, plateCol)+1, len(row))}
		}

		ts, err := plate.ParseTime(strings.TrimSpace(row[tsCol]))
		if err != nil {
			return nil, &RowError{Line: line, Err: fmt.Errorf("%s: %w", headerTimestamp, err)}
		}
		value := row[plateCol]
		if opts.NormalizePlates {
			value = NormalizePlate(value)
		} else {
			value = strings.TrimSpace(value)
		}
		if value == "" {
			return nil, &RowError{Line: line, Err: fmt.Errorf("%s is empty", headerPlate)}
		}
		records = append(records, Record{Timestamp: ts, Plate: value})
	}
	return records, nil
}

var upper = cases.Upper(language.Und)

// NormalizePlate folds full-width forms to ASCII, upper-cases, and removes
// whitespace and dashes.
func NormalizePlate(value string) string {
	folded := upper.String(width.Fold.String(value))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, folded)
}

// WriteCSV writes records in the DateTime,LicensePlate format.
func WriteCSV(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{headerTimestamp, headerPlate}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		if err := writer.Write([]string{plate.FormatTime(rec.Timestamp), rec.Plate}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
