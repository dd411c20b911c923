package testsupport

import (
	"path/filepath"
	"testing"

	"karasync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options. The cutoff is
// disabled and history is off so tests opt in explicitly.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LibraryDir = filepath.Join(base, "library")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.SnapshotPath = filepath.Join(base, "snapshot.json")
	cfgVal.Matching.CutoffDate = ""
	cfgVal.History.Enabled = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithHistory enables history persistence at the given database path.
func WithHistory(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = true
		b.cfg.History.Path = path
	}
}

// WithCutoffDate sets the archive-date cutoff on the test config.
func WithCutoffDate(date string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.CutoffDate = date
	}
}

// WithPresetPath points the test config at a naming preset file.
func WithPresetPath(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.PresetPath = path
	}
}

// WithWorkers overrides the worker pool size on the test config.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.Workers = n
	}
}
