package store_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"platefix/internal/plate"
	"platefix/internal/store"
	"platefix/internal/testsupport"
)

var base = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func TestOpenCreatesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	health, err := st.CheckHealth(ctx)
	if err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
	if !health.DatabaseExists || !health.DatabaseReadable || !health.IntegrityCheck {
		t.Fatalf("unexpected health: %+v", health)
	}
	if len(health.MissingTables) != 0 {
		t.Fatalf("missing tables: %v", health.MissingTables)
	}
	if st.Path() != cfg.DatabasePath() {
		t.Fatalf("unexpected path %q", st.Path())
	}
}

func TestReopenKeepsData(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx := context.Background()
	if _, err := st.InsertDetections(ctx, []plate.Detection{{Timestamp: base, Plate: "1234567"}}); err != nil {
		t.Fatalf("InsertDetections: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	n, err := reopened.CountDetections(ctx)
	if err != nil {
		t.Fatalf("CountDetections: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 detection after reopen, got %d", n)
	}
}

func TestOpenRejectsSecondWriter(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_ = testsupport.MustOpenStore(t, cfg)

	second, err := store.Open(cfg)
	if err == nil {
		second.Close()
		t.Fatal("expected second Open to fail while the lock is held")
	}
	if !errors.Is(err, store.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestDetectionsByTimeOrdersAndAssignsIDs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	stored := testsupport.SeedDetections(t, st, base,
		testsupport.Reading{Offset: 2 * time.Minute, Plate: "CCC3333"},
		testsupport.Reading{Offset: 0, Plate: "AAA1111"},
		testsupport.Reading{Offset: time.Minute, Plate: "BBB2222"},
		testsupport.Reading{Offset: time.Minute, Plate: "BBB2223"},
	)

	wantPlates := []string{"AAA1111", "BBB2222", "BBB2223", "CCC3333"}
	var gotPlates []string
	for i, d := range stored {
		gotPlates = append(gotPlates, d.Plate)
		if d.ID == 0 {
			t.Fatalf("detection %d has no id", i)
		}
		if i > 0 && d.Timestamp.Before(stored[i-1].Timestamp) {
			t.Fatalf("detections not ordered by time at %d", i)
		}
	}
	if !reflect.DeepEqual(gotPlates, wantPlates) {
		t.Fatalf("plates = %v, want %v", gotPlates, wantPlates)
	}
	if stored[1].ID > stored[2].ID {
		t.Fatalf("equal timestamps should order by id: %d > %d", stored[1].ID, stored[2].ID)
	}
	if !stored[0].Timestamp.Equal(base) {
		t.Fatalf("timestamp round trip: got %s want %s", stored[0].Timestamp, base)
	}
}

func TestDetectionsTruncateToSeconds(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	stored := testsupport.SeedDetections(t, st, base, testsupport.Reading{Offset: 1500 * time.Millisecond, Plate: "AAA1111"})
	if !stored[0].Timestamp.Equal(base.Add(time.Second)) {
		t.Fatalf("expected sub-second precision dropped, got %s", stored[0].Timestamp)
	}
}

func TestEmptyStore(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	detections, err := st.DetectionsByTime(ctx)
	if err != nil {
		t.Fatalf("DetectionsByTime: %v", err)
	}
	if len(detections) != 0 {
		t.Fatalf("expected no detections, got %d", len(detections))
	}
	if n, err := st.InsertDetections(ctx, nil); err != nil || n != 0 {
		t.Fatalf("InsertDetections(nil) = %d, %v", n, err)
	}
	summary, err := st.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(summary) != 0 {
		t.Fatalf("expected empty summary, got %v", summary)
	}
}

func correctionsFor(detections []plate.Detection) []plate.Correction {
	matches := plate.FindMatches(detections, 5*time.Minute, 70)
	return plate.ResolveAll(matches, nil)
}

func TestReplaceCorrectionsReplacesPreviousSet(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	stored := testsupport.SeedDetections(t, st, base,
		testsupport.Reading{Offset: 0, Plate: "1234567"},
		testsupport.Reading{Offset: 20 * time.Second, Plate: "1234568"},
		testsupport.Reading{Offset: 10 * time.Minute, Plate: "AB12345"},
		testsupport.Reading{Offset: 10*time.Minute + 20*time.Second, Plate: "B12345"},
	)
	first := correctionsFor(stored)
	if len(first) != 2 {
		t.Fatalf("expected 2 corrections, got %d", len(first))
	}
	if err := st.ReplaceCorrections(ctx, first); err != nil {
		t.Fatalf("ReplaceCorrections: %v", err)
	}

	second := first[1:]
	if err := st.ReplaceCorrections(ctx, second); err != nil {
		t.Fatalf("ReplaceCorrections: %v", err)
	}
	got, err := st.Corrections(ctx)
	if err != nil {
		t.Fatalf("Corrections: %v", err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Fatalf("stored corrections = %+v, want %+v", got, second)
	}
}

func TestReplaceCorrectionsIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	stored := testsupport.SeedDetections(t, st, base,
		testsupport.Reading{Offset: 0, Plate: "1234567"},
		testsupport.Reading{Offset: 20 * time.Second, Plate: "1234568"},
	)
	corrections := correctionsFor(stored)

	if err := st.ReplaceCorrections(ctx, corrections); err != nil {
		t.Fatalf("first ReplaceCorrections: %v", err)
	}
	once, err := st.Corrections(ctx)
	if err != nil {
		t.Fatalf("Corrections: %v", err)
	}
	if err := st.ReplaceCorrections(ctx, corrections); err != nil {
		t.Fatalf("second ReplaceCorrections: %v", err)
	}
	twice, err := st.Corrections(ctx)
	if err != nil {
		t.Fatalf("Corrections: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("replace not idempotent: %+v vs %+v", once, twice)
	}
	want := plate.Correction{
		OriginalDetectionID: stored[0].ID,
		Timestamp:           base,
		OriginalPlate:       "1234567",
		CorrectedPlate:      "1234567",
		Confidence:          85,
		Type:                plate.CorrectionCharSwap,
	}
	if len(twice) != 1 || twice[0] != want {
		t.Fatalf("unexpected stored correction: %+v", twice)
	}
}

func TestReplaceCorrectionsRollsBackOnFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	stored := testsupport.SeedDetections(t, st, base,
		testsupport.Reading{Offset: 0, Plate: "1234567"},
		testsupport.Reading{Offset: 20 * time.Second, Plate: "1234568"},
	)
	original := correctionsFor(stored)
	if err := st.ReplaceCorrections(ctx, original); err != nil {
		t.Fatalf("ReplaceCorrections: %v", err)
	}

	broken := []plate.Correction{
		{OriginalDetectionID: stored[0].ID, Timestamp: base, OriginalPlate: "1234567", CorrectedPlate: "1234567", Confidence: 90, Type: plate.CorrectionCharSwap},
		{OriginalDetectionID: 9999, Timestamp: base, OriginalPlate: "X", CorrectedPlate: "X", Confidence: 90, Type: plate.CorrectionCharSwap},
	}
	if err := st.ReplaceCorrections(ctx, broken); err == nil {
		t.Fatal("expected foreign key violation to fail the replace")
	}

	got, err := st.Corrections(ctx)
	if err != nil {
		t.Fatalf("Corrections: %v", err)
	}
	if !reflect.DeepEqual(got, original) {
		t.Fatalf("previous corrections not preserved after failed replace: %+v", got)
	}
}

func TestReplaceCorrectionsWithEmptySetClears(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	stored := testsupport.SeedDetections(t, st, base,
		testsupport.Reading{Offset: 0, Plate: "1234567"},
		testsupport.Reading{Offset: 20 * time.Second, Plate: "1234568"},
	)
	if err := st.ReplaceCorrections(ctx, correctionsFor(stored)); err != nil {
		t.Fatalf("ReplaceCorrections: %v", err)
	}
	if err := st.ReplaceCorrections(ctx, nil); err != nil {
		t.Fatalf("ReplaceCorrections(nil): %v", err)
	}
	n, err := st.CountCorrections(ctx)
	if err != nil {
		t.Fatalf("CountCorrections: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected corrections cleared, got %d", n)
	}
}

func TestSummaryGroupsByType(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	stored := testsupport.SeedDetections(t, st, base,
		testsupport.Reading{Offset: 0, Plate: "1234567"},
		testsupport.Reading{Offset: 20 * time.Second, Plate: "1234568"},
		testsupport.Reading{Offset: 10 * time.Minute, Plate: "AB12345"},
		testsupport.Reading{Offset: 10*time.Minute + 20*time.Second, Plate: "B12345"},
		testsupport.Reading{Offset: 20 * time.Minute, Plate: "Z76543"},
		testsupport.Reading{Offset: 20*time.Minute + 20*time.Second, Plate: "Z765432"},
	)
	if err := st.ReplaceCorrections(ctx, correctionsFor(stored)); err != nil {
		t.Fatalf("ReplaceCorrections: %v", err)
	}

	summary, err := st.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	counts := map[plate.CorrectionType]int{}
	for _, s := range summary {
		counts[s.Type] = s.Count
		if s.AvgConfidence < 70 || s.AvgConfidence > 100 {
			t.Fatalf("unexpected average confidence for %s: %v", s.Type, s.AvgConfidence)
		}
	}
	want := map[plate.CorrectionType]int{
		plate.CorrectionAddedChars:   1,
		plate.CorrectionCharSwap:     1,
		plate.CorrectionMissingChars: 1,
	}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("summary counts = %v, want %v", counts, want)
	}
}

func TestClearDetectionsRemovesCorrections(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	stored := testsupport.SeedDetections(t, st, base,
		testsupport.Reading{Offset: 0, Plate: "1234567"},
		testsupport.Reading{Offset: 20 * time.Second, Plate: "1234568"},
	)
	if err := st.ReplaceCorrections(ctx, correctionsFor(stored)); err != nil {
		t.Fatalf("ReplaceCorrections: %v", err)
	}
	removed, err := st.ClearDetections(ctx)
	if err != nil {
		t.Fatalf("ClearDetections: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 detections removed, got %d", removed)
	}
	if n, _ := st.CountCorrections(ctx); n != 0 {
		t.Fatalf("expected corrections removed, got %d", n)
	}
}
