package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"karasync/internal/apperr"
	"karasync/internal/catalog"
	"karasync/internal/config"
	"karasync/internal/logging"
	"karasync/internal/preset"
	"karasync/internal/state"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		LogDir: cfg.Paths.LogDir,
	})
}

// resolveRoot picks the library root for a session: the explicit flag wins,
// then the remembered last-used directory, then the configured default.
func resolveRoot(cfg *config.Config, pathFlag string) string {
	if trimmed := strings.TrimSpace(pathFlag); trimmed != "" {
		return trimmed
	}
	if dir, ok := state.LastDir(); ok {
		return dir
	}
	return cfg.Paths.LibraryDir
}

func loadIndex(cfg *config.Config) (*catalog.Index, error) {
	records, err := catalog.LoadSnapshot(cfg.Paths.SnapshotPath)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrSnapshot, "cli", "load snapshot", cfg.Paths.SnapshotPath, err)
	}
	return catalog.NewIndex(records, catalog.WithMinScore(cfg.Matching.FuzzyThreshold))
}

func loadPreset(cfg *config.Config) (*preset.RuleSet, error) {
	if strings.TrimSpace(cfg.Paths.PresetPath) == "" {
		return preset.Default(), nil
	}
	rules, err := preset.Load(cfg.Paths.PresetPath)
	if err != nil {
		return nil, fmt.Errorf("load preset: %w", err)
	}
	return rules, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
