package config

import (
	"errors"
	"fmt"
	"time"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.LibraryDir == "" {
		return errors.New("paths.library_dir must be set")
	}
	if c.Paths.SnapshotPath == "" {
		return errors.New("paths.snapshot_path must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.FuzzyThreshold < 0 || c.Matching.FuzzyThreshold > 1 {
		return errors.New("matching.fuzzy_threshold must be between 0 and 1")
	}
	if c.Matching.Workers < 1 {
		return errors.New("matching.workers must be at least 1")
	}
	if c.Matching.CutoffDate != "" {
		if _, err := time.Parse("2006-01-02", c.Matching.CutoffDate); err != nil {
			return fmt.Errorf("matching.cutoff_date must be YYYY-MM-DD: %w", err)
		}
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
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
	return nil
}

// CutoffTime parses the configured cutoff date. Returns the zero time when no
// cutoff is configured.
func (c *Config) CutoffTime() time.Time {
	if c.Matching.CutoffDate == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", c.Matching.CutoffDate)
	if err != nil {
		return time.Time{}
	}
	return t
}
