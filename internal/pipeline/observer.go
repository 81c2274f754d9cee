package pipeline

import (
	"log/slog"

	"platefix/internal/logging"
	"platefix/internal/plate"
)

// LogObserver logs matcher and resolver events at debug level.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver returns an observer writing to logger. A nil logger discards.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) MatchFound(m plate.Match) {
	o.logger.Debug(
		"match found",
		logging.String(logging.FieldEventType, "match_found"),
		logging.Int64("first_id", m.First.ID),
		logging.String("first_plate", m.First.Plate),
		logging.Int64("second_id", m.Second.ID),
		logging.String("second_plate", m.Second.Plate),
		logging.Float64("similarity", m.Similarity),
		logging.Duration("gap", m.Gap()),
	)
}

func (o *LogObserver) CorrectionResolved(_ plate.Match, c plate.Correction) {
	o.logger.Debug(
		"correction resolved",
		logging.String(logging.FieldEventType, "correction_resolved"),
		logging.Int64(logging.FieldDetectionID, c.OriginalDetectionID),
		logging.String("original_plate", c.OriginalPlate),
		logging.String("corrected_plate", c.CorrectedPlate),
		logging.Int("confidence", c.Confidence),
		logging.String("correction_type", string(c.Type)),
	)
}

type multiObserver []plate.Observer

func (m multiObserver) MatchFound(match plate.Match) {
	for _, o := range m {
		o.MatchFound(match)
	}
}

func (m multiObserver) CorrectionResolved(match plate.Match, c plate.Correction) {
	for _, o := range m {
		o.CorrectionResolved(match, c)
	}
}
