package store

import (
	"context"
	"fmt"
	"strings"

	"platefix/internal/plate"
)

// InsertDetections appends detections in one transaction and returns how many
// rows were written. IDs on the input are ignored; the database assigns them.
func (s *Store) InsertDetections(ctx context.Context, detections []plate.Detection) (int, error) {
	if len(detections) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO detections (timestamp, plate) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert detection: %w", err)
	}
	defer stmt.Close()

	for i, d := range detections {
		if _, err := stmt.ExecContext(ctx, plate.FormatTime(d.Timestamp), d.Plate); err != nil {
			return 0, fmt.Errorf("insert detection %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit detections: %w", err)
	}
	return len(detections), nil
}

// DetectionsByTime returns every detection ordered ascending by timestamp,
// ties broken by id. A stored timestamp that does not parse aborts the read
// with a *TimestampError.
func (s *Store) DetectionsByTime(ctx context.Context) ([]plate.Detection, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, timestamp, plate FROM detections ORDER BY timestamp, id`)
	if err != nil {
		return nil, fmt.Errorf("query detections: %w", err)
	}
	defer rows.Close()

	var detections []plate.Detection
	for rows.Next() {
		var (
			id    int64
			raw   string
			value string
		)
		if err := rows.Scan(&id, &raw, &value); err != nil {
			return nil, fmt.Errorf("scan detection: %w", err)
		}
		ts, err := plate.ParseTime(raw)
		if err != nil {
			return nil, &TimestampError{DetectionID: id, Raw: raw, Err: err}
		}
		detections = append(detections, plate.Detection{ID: id, Timestamp: ts, Plate: value})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate detections: %w", err)
	}
	return detections, nil
}

// CountDetections returns the number of stored detections.
func (s *Store) CountDetections(ctx context.Context) (int, error) {
	return s.count(ctx, "detections")
}

// ClearDetections removes every detection together with the corrections
// derived from them.
func (s *Store) ClearDetections(ctx context.Context) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin clear tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM corrections`); err != nil {
		return 0, fmt.Errorf("clear corrections: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM detections`)
	if err != nil {
		return 0, fmt.Errorf("clear detections: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit clear: %w", err)
	}
	return removed, nil
}

func (s *Store) count(ctx context.Context, table string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", strings.TrimSpace(table), err)
	}
	return n, nil
}
