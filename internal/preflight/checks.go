package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"platefix/internal/config"
	"platefix/internal/plate"
	"platefix/internal/store"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDetectionSettings verifies the configured window and threshold are
// usable by the matcher.
func CheckDetectionSettings(cfg *config.Config) Result {
	const name = "Detection settings"

	settings := plate.DefaultSettings()
	settings.Window = cfg.TimeWindow()
	settings.Threshold = cfg.Detection.SimilarityThreshold
	if err := settings.Validate(); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf(
		"window %s, threshold %g%%, lookahead %d",
		settings.Window, settings.Threshold, settings.Lookahead,
	)}
}

// CheckDatabase opens the store and runs its health check. A database that
// has not been created yet passes.
func CheckDatabase(ctx context.Context, cfg *config.Config) Result {
	const name = "Database"

	path := cfg.DatabasePath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (not created yet)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}

	st, err := store.Open(cfg)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrLocked):
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: in use by another platefix process)", path)}
		case errors.Is(err, store.ErrSchemaMismatch):
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
		default:
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: open: %v)", path, err)}
		}
	}
	defer st.Close()

	health, err := st.CheckHealth(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if len(health.MissingTables) > 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: missing tables %s)", path, strings.Join(health.MissingTables, ", "))}
	}
	if !health.IntegrityCheck {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: integrity check failed)", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf(
		"%s (%d detections, %d corrections)", path, health.Detections, health.Corrections,
	)}
}
