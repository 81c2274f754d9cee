package ingest_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"platefix/internal/ingest"
	"platefix/internal/testsupport"
)

func TestReadCSV(t *testing.T) {
	input := "DateTime,LicensePlate\n" +
		"2024-03-01 08:00:00,1234567\n" +
		"2024-03-01 08:00:20, 1234568\n" +
		"\n" +
		"2024-03-01 08:01:20,AB12345\n"

	records, err := ingest.ReadCSV(strings.NewReader(input), ingest.Options{})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	want := time.Date(2024, 3, 1, 8, 0, 20, 0, time.UTC)
	if !records[1].Timestamp.Equal(want) || records[1].Plate != "1234568" {
		t.Fatalf("unexpected record: %+v", records[1])
	}
	if d := records[2].Detection(); d.ID != 0 || d.Plate != "AB12345" {
		t.Fatalf("unexpected detection: %+v", d)
	}
}

func TestReadCSVColumnOrder(t *testing.T) {
	input := "LicensePlate,Camera,DateTime\nXYZ987,north,2024-03-01 08:00:00\n"
	records, err := ingest.ReadCSV(strings.NewReader(input), ingest.Options{})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(records) != 1 || records[0].Plate != "XYZ987" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestReadCSVRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		header   bool
	}{
		{name: "empty", input: "", header: true},
		{name: "wrong header", input: "when,plate\n2024-03-01 08:00:00,1\n", header: true},
		{name: "bad timestamp", input: "DateTime,LicensePlate\n2024-03-01 08:00:00,A\n2024-03-01T08:00:20,B\n", wantLine: 3},
		{name: "short row", input: "DateTime,LicensePlate\n2024-03-01 08:00:00\n", wantLine: 2},
		{name: "empty plate", input: "DateTime,LicensePlate\n2024-03-01 08:00:00,  \n", wantLine: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ingest.ReadCSV(strings.NewReader(tt.input), ingest.Options{})
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.header {
				if !errors.Is(err, ingest.ErrMissingHeader) {
					t.Fatalf("expected ErrMissingHeader, got %v", err)
				}
				return
			}
			var rowErr *ingest.RowError
			if !errors.As(err, &rowErr) {
				t.Fatalf("expected *RowError, got %T: %v", err, err)
			}
			if rowErr.Line != tt.wantLine {
				t.Fatalf("line = %d, want %d", rowErr.Line, tt.wantLine)
			}
		})
	}
}

func TestNormalizePlate(t *testing.T) {
	tests := map[string]string{
		"ab-123 45": "AB12345",
		"１２３４５６７": "1234567",
		"  xyz987 ":   "XYZ987",
		"AB12345":     "AB12345",
	}
	for in, want := range tests {
		if got := ingest.NormalizePlate(in); got != want {
			t.Errorf("NormalizePlate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReadCSVNormalizes(t *testing.T) {
	input := "DateTime,LicensePlate\n2024-03-01 08:00:00,ab-123 45\n"

	raw, err := ingest.ReadCSV(strings.NewReader(input), ingest.Options{})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if raw[0].Plate != "ab-123 45" {
		t.Fatalf("plate changed without normalization: %q", raw[0].Plate)
	}

	normalized, err := ingest.ReadCSV(strings.NewReader(input), ingest.Options{NormalizePlates: true})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if normalized[0].Plate != "AB12345" {
		t.Fatalf("plate not normalized: %q", normalized[0].Plate)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	records := []ingest.Record{
		{Timestamp: base, Plate: "1234567"},
		{Timestamp: base.Add(20 * time.Second), Plate: "1234568"},
	}
	var buf bytes.Buffer
	if err := ingest.WriteCSV(&buf, records); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "DateTime,LicensePlate\n2024-03-01 08:00:00,1234567\n") {
		t.Fatalf("unexpected csv output:\n%s", buf.String())
	}
	back, err := ingest.ReadCSV(&buf, ingest.Options{})
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(back) != 2 || !back[1].Timestamp.Equal(records[1].Timestamp) {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestReadCSVFile(t *testing.T) {
	path := testsupport.WriteCSV(t, t.TempDir(), "2024-03-01 08:00:00,1234567")
	records, err := ingest.ReadCSVFile(path, ingest.Options{})
	if err != nil {
		t.Fatalf("ReadCSVFile: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	if _, err := ingest.ReadCSVFile(filepath.Join(t.TempDir(), "missing.csv"), ingest.Options{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
