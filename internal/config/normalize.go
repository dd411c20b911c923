package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeLogging()
	return c.normalizeHistory()
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.SnapshotPath, err = expandPath(c.Paths.SnapshotPath); err != nil {
		return fmt.Errorf("paths.snapshot_path: %w", err)
	}
	if c.Paths.PresetPath, err = expandPath(c.Paths.PresetPath); err != nil {
		return fmt.Errorf("paths.preset_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeMatching() {
	if c.Matching.Workers <= 0 {
		c.Matching.Workers = defaultWorkers
	}
	if c.Matching.FuzzyThreshold == 0 {
		c.Matching.FuzzyThreshold = defaultFuzzyThreshold
	}
	c.Matching.CutoffDate = strings.TrimSpace(c.Matching.CutoffDate)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeHistory() error {
	var err error
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}
