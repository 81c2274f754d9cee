package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDetection(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateGenerator(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDetection() error {
	if c.Detection.TimeWindowMinutes <= 0 {
		return errors.New("detection.time_window_minutes must be positive")
	}
	if c.Detection.SimilarityThreshold < 0 || c.Detection.SimilarityThreshold > 100 {
		return errors.New("detection.similarity_threshold must be between 0 and 100")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Storage.TimeoutSeconds <= 0 {
		return errors.New("storage.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateGenerator() error {
	if err := ensurePositiveMap(map[string]int{
		"generator.records":             c.Generator.Records,
		"generator.reading_gap_seconds": c.Generator.ReadingGapSeconds,
		"generator.pair_gap_seconds":    c.Generator.PairGapSeconds,
	}); err != nil {
		return err
	}
	if c.Generator.Records%2 != 0 {
		return errors.New("generator.records must be even (records are generated in pairs)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
