package plate

import (
	"context"
	"fmt"
	"time"
)

const (
	// DefaultLookahead bounds how many successors each detection is compared
	// with. Duplicate reads are assumed to be temporally adjacent; a pair
	// separated by more than this many detections is never matched.
	DefaultLookahead = 4
	// DefaultWindow is the widest gap between two reads of the same plate.
	DefaultWindow = 5 * time.Minute
	// DefaultThreshold is the minimum similarity percentage for a match.
	DefaultThreshold = 70.0
)

// Settings controls which detection pairs the matcher reports.
type Settings struct {
	Window    time.Duration
	Threshold float64
	Lookahead int
}

// DefaultSettings returns the window, threshold, and lookahead used when
// nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Window:    DefaultWindow,
		Threshold: DefaultThreshold,
		Lookahead: DefaultLookahead,
	}
}

// Validate reports settings the matcher cannot honor.
func (s Settings) Validate() error {
	if s.Window <= 0 {
		return fmt.Errorf("window must be positive, got %s", s.Window)
	}
	if s.Threshold < 0 || s.Threshold > 100 {
		return fmt.Errorf("threshold must be within [0,100], got %g", s.Threshold)
	}
	if s.Lookahead <= 0 {
		return fmt.Errorf("lookahead must be positive, got %d", s.Lookahead)
	}
	return nil
}

// Scorer computes a similarity percentage for two plates.
type Scorer func(a, b string) float64

// Matcher scans time-ordered detections for likely duplicate reads.
type Matcher struct {
	settings Settings
	score    Scorer
	observer Observer
}

// MatcherOption customizes a Matcher.
type MatcherOption func(*Matcher)

// WithScorer replaces the similarity function.
func WithScorer(score Scorer) MatcherOption {
	return func(m *Matcher) {
		if score != nil {
			m.score = score
		}
	}
}

// WithObserver registers an observer notified for every emitted match.
func WithObserver(observer Observer) MatcherOption {
	return func(m *Matcher) {
		if observer != nil {
			m.observer = observer
		}
	}
}

// NewMatcher builds a matcher. A non-positive lookahead falls back to
// DefaultLookahead.
func NewMatcher(settings Settings, opts ...MatcherOption) *Matcher {
	if settings.Lookahead <= 0 {
		settings.Lookahead = DefaultLookahead
	}
	m := &Matcher{
		settings: settings,
		score:    Similarity,
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Settings returns the effective matcher settings.
func (m *Matcher) Settings() Settings {
	return m.settings
}

// ScanResult holds the matches found by a scan and how many pairs were scored.
type ScanResult struct {
	Matches     []Match
	Comparisons int
}

// Scan compares each detection with at most Lookahead successors. records
// must already be sorted ascending by timestamp; Scan does not sort. A
// successor further than Window from the current detection ends the inner
// loop. Identical plates are skipped without scoring. Matches come back in
// discovery order and a detection may appear in several of them.
//
// ctx is checked once per outer detection.
func (m *Matcher) Scan(ctx context.Context, records []Detection) (ScanResult, error) {
	var result ScanResult
	for i := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		first := records[i]
		end := min(i+1+m.settings.Lookahead, len(records))
		for _, second := range records[i+1 : end] {
			if second.Timestamp.Sub(first.Timestamp) > m.settings.Window {
				break
			}
			if first.Plate == second.Plate {
				continue
			}
			similarity := m.score(first.Plate, second.Plate)
			result.Comparisons++
			if similarity < m.settings.Threshold {
				continue
			}
			match := Match{First: first, Second: second, Similarity: similarity}
			result.Matches = append(result.Matches, match)
			m.observer.MatchFound(match)
		}
	}
	return result, nil
}

// FindMatches runs a scan with the default lookahead and scorer.
func FindMatches(records []Detection, window time.Duration, threshold float64) []Match {
	matcher := NewMatcher(Settings{Window: window, Threshold: threshold, Lookahead: DefaultLookahead})
	result, _ := matcher.Scan(context.Background(), records)
	return result.Matches
}
