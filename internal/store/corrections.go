package store

import (
	"context"
	"fmt"

	"platefix/internal/plate"
)

// TypeSummary aggregates stored corrections of one type.
type TypeSummary struct {
	Type          plate.CorrectionType
	Count         int
	AvgConfidence float64
}

// ReplaceCorrections swaps the stored corrections for the given set in one
// transaction. On success nothing from the previous set remains; on failure
// the previous set is untouched. An empty set clears the table.
func (s *Store) ReplaceCorrections(ctx context.Context, corrections []plate.Correction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM corrections`); err != nil {
		return fmt.Errorf("delete corrections: %w", err)
	}

	if len(corrections) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO corrections (
            original_detection_id, timestamp, original_plate,
            corrected_plate, confidence_score, correction_type
        ) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert correction: %w", err)
		}
		defer stmt.Close()

		for _, c := range corrections {
			if _, err := stmt.ExecContext(
				ctx,
				c.OriginalDetectionID,
				plate.FormatTime(c.Timestamp),
				c.OriginalPlate,
				c.CorrectedPlate,
				c.Confidence,
				string(c.Type),
			); err != nil {
				return fmt.Errorf("insert correction for detection %d: %w", c.OriginalDetectionID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit corrections: %w", err)
	}
	return nil
}

// Corrections returns the stored corrections in insertion order.
func (s *Store) Corrections(ctx context.Context) ([]plate.Correction, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT original_detection_id, timestamp, original_plate,
        corrected_plate, confidence_score, correction_type
        FROM corrections ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query corrections: %w", err)
	}
	defer rows.Close()

	var corrections []plate.Correction
	for rows.Next() {
		var (
			c       plate.Correction
			rawTime string
			rawType string
		)
		if err := rows.Scan(&c.OriginalDetectionID, &rawTime, &c.OriginalPlate, &c.CorrectedPlate, &c.Confidence, &rawType); err != nil {
			return nil, fmt.Errorf("scan correction: %w", err)
		}
		ts, err := plate.ParseTime(rawTime)
		if err != nil {
			return nil, &TimestampError{DetectionID: c.OriginalDetectionID, Raw: rawTime, Err: err}
		}
		c.Timestamp = ts
		c.Type = plate.ParseCorrectionType(rawType)
		corrections = append(corrections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate corrections: %w", err)
	}
	return corrections, nil
}

// CountCorrections returns the number of stored corrections.
func (s *Store) CountCorrections(ctx context.Context) (int, error) {
	return s.count(ctx, "corrections")
}

// Summary groups stored corrections by type.
func (s *Store) Summary(ctx context.Context) ([]TypeSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT correction_type, COUNT(*), AVG(confidence_score)
        FROM corrections GROUP BY correction_type ORDER BY correction_type`)
	if err != nil {
		return nil, fmt.Errorf("correction summary: %w", err)
	}
	defer rows.Close()

	var summaries []TypeSummary
	for rows.Next() {
		var (
			rawType string
			summary TypeSummary
		)
		if err := rows.Scan(&rawType, &summary.Count, &summary.AvgConfidence); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summary.Type = plate.ParseCorrectionType(rawType)
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}
