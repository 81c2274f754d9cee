package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"platefix/internal/config"
	"platefix/internal/logging"
	"platefix/internal/plate"
)

// Source supplies detections ordered ascending by timestamp.
type Source interface {
	DetectionsByTime(ctx context.Context) ([]plate.Detection, error)
}

// Sink atomically replaces the stored correction set.
type Sink interface {
	ReplaceCorrections(ctx context.Context, corrections []plate.Correction) error
}

// Options configures a Runner.
type Options struct {
	Settings plate.Settings
	// StoreTimeout bounds each Source and Sink call. Zero disables the bound.
	StoreTimeout time.Duration
	Logger       *slog.Logger
	// Observer receives match and correction events in addition to the
	// runner's own debug logging. Optional.
	Observer plate.Observer
}

// OptionsFromConfig derives runner options from configuration.
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) Options {
	settings := plate.DefaultSettings()
	settings.Window = cfg.TimeWindow()
	settings.Threshold = cfg.Detection.SimilarityThreshold
	return Options{
		Settings:     settings,
		StoreTimeout: cfg.StoreTimeout(),
		Logger:       logger,
	}
}

// Result summarizes one run.
type Result struct {
	RunID       string
	Detections  int
	Comparisons int
	Matches     []plate.Match
	Corrections []plate.Correction
	Elapsed     time.Duration
}

// Runner executes detection passes against a source.
type Runner struct {
	source  Source
	opts    Options
	logger  *slog.Logger
	newID   func() string
	nowFunc func() time.Time
}

// New constructs a runner. The settings are validated up front.
func New(source Source, opts Options) (*Runner, error) {
	if source == nil {
		return nil, errors.New("pipeline: source is required")
	}
	if opts.Settings.Lookahead <= 0 {
		opts.Settings.Lookahead = plate.DefaultLookahead
	}
	if err := opts.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return &Runner{
		source:  source,
		opts:    opts,
		logger:  logging.NewComponentLogger(opts.Logger, "pipeline"),
		newID:   uuid.NewString,
		nowFunc: time.Now,
	}, nil
}

// Detect fetches detections and scans them without resolving or persisting
// anything. Result.Corrections is empty.
func (r *Runner) Detect(ctx context.Context) (Result, error) {
	ctx, logger, result := r.begin(ctx)
	start := r.nowFunc()

	detections, err := r.fetch(ctx)
	if err != nil {
		return result, err
	}
	result.Detections = len(detections)

	scan, err := r.matcher(logger).Scan(ctx, detections)
	if err != nil {
		return result, fmt.Errorf("scan detections: %w", err)
	}
	result.Matches = scan.Matches
	result.Comparisons = scan.Comparisons
	result.Elapsed = r.nowFunc().Sub(start)

	logger.Info(
		"detection scan complete",
		logging.String(logging.FieldEventType, "scan_complete"),
		logging.Int("detections", result.Detections),
		logging.Int("comparisons", result.Comparisons),
		logging.Int("matches", len(result.Matches)),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

// Run performs a full pass and hands the corrections to sink. The sink is
// called even when there are no corrections so stale ones are cleared.
func (r *Runner) Run(ctx context.Context, sink Sink) (Result, error) {
	if sink == nil {
		return Result{}, errors.New("pipeline: sink is required")
	}
	ctx, logger, result := r.begin(ctx)
	start := r.nowFunc()

	logger.Info("run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.Duration("window", r.opts.Settings.Window),
		logging.Float64("threshold", r.opts.Settings.Threshold),
		logging.Int("lookahead", r.opts.Settings.Lookahead),
	)

	detections, err := r.fetch(ctx)
	if err != nil {
		logger.Error("run failed", logging.String(logging.FieldEventType, "run_failed"), logging.Error(err))
		return result, err
	}
	result.Detections = len(detections)

	observer := r.observer(logger)
	scan, err := plate.NewMatcher(r.opts.Settings, plate.WithObserver(observer)).Scan(ctx, detections)
	if err != nil {
		return result, fmt.Errorf("scan detections: %w", err)
	}
	result.Matches = scan.Matches
	result.Comparisons = scan.Comparisons
	result.Corrections = plate.ResolveAll(scan.Matches, observer)

	if err := r.persist(ctx, sink, result.Corrections); err != nil {
		logger.Error("run failed", logging.String(logging.FieldEventType, "run_failed"), logging.Error(err))
		return result, err
	}
	result.Elapsed = r.nowFunc().Sub(start)

	logger.Info(
		"run complete",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("detections", result.Detections),
		logging.Int("comparisons", result.Comparisons),
		logging.Int("matches", len(result.Matches)),
		logging.Int("corrections", len(result.Corrections)),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

func (r *Runner) begin(ctx context.Context) (context.Context, *slog.Logger, Result) {
	runID := r.newID()
	ctx = logging.WithRunID(ctx, runID)
	return ctx, logging.WithContext(ctx, r.logger), Result{RunID: runID}
}

func (r *Runner) matcher(logger *slog.Logger) *plate.Matcher {
	return plate.NewMatcher(r.opts.Settings, plate.WithObserver(r.observer(logger)))
}

func (r *Runner) observer(logger *slog.Logger) plate.Observer {
	observers := multiObserver{NewLogObserver(logger)}
	if r.opts.Observer != nil {
		observers = append(observers, r.opts.Observer)
	}
	return observers
}

func (r *Runner) fetch(ctx context.Context) ([]plate.Detection, error) {
	callCtx, cancel := r.storeContext(ctx)
	defer cancel()
	detections, err := r.source.DetectionsByTime(callCtx)
	if err != nil {
		return nil, fmt.Errorf("fetch detections: %w", err)
	}
	return detections, nil
}

func (r *Runner) persist(ctx context.Context, sink Sink, corrections []plate.Correction) error {
	callCtx, cancel := r.storeContext(ctx)
	defer cancel()
	if err := sink.ReplaceCorrections(callCtx, corrections); err != nil {
		return fmt.Errorf("replace corrections: %w", err)
	}
	return nil
}

func (r *Runner) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.opts.StoreTimeout)
}
