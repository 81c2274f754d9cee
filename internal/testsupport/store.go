package testsupport

import (
	"context"
	"testing"
	"time"

	"platefix/internal/config"
	"platefix/internal/plate"
	"platefix/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// Reading is a plate read at an offset from a base time.
type Reading struct {
	Offset time.Duration
	Plate  string
}

// SeedDetections inserts readings relative to base and returns them as
// stored, ordered by time.
func SeedDetections(t testing.TB, st *store.Store, base time.Time, readings ...Reading) []plate.Detection {
	t.Helper()

	detections := make([]plate.Detection, 0, len(readings))
	for _, r := range readings {
		detections = append(detections, plate.Detection{Timestamp: base.Add(r.Offset), Plate: r.Plate})
	}
	ctx := context.Background()
	if _, err := st.InsertDetections(ctx, detections); err != nil {
		t.Fatalf("InsertDetections: %v", err)
	}
	stored, err := st.DetectionsByTime(ctx)
	if err != nil {
		t.Fatalf("DetectionsByTime: %v", err)
	}
	return stored
}
