package config

const (
	defaultLibraryDir     = "~/karaoke"
	defaultLogDir         = "~/.local/share/karasync/logs"
	defaultSnapshotPath   = "~/.cache/karasync/snapshot.json"
	defaultPresetPath     = ""
	defaultFuzzyThreshold = 0.82
	defaultCutoffDate     = "2023-01-01"
	defaultWorkers        = 4
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir:   defaultLibraryDir,
			LogDir:       defaultLogDir,
			SnapshotPath: defaultSnapshotPath,
			PresetPath:   defaultPresetPath,
		},
		Matching: Matching{
			FuzzyThreshold: defaultFuzzyThreshold,
			CutoffDate:     defaultCutoffDate,
			Workers:        defaultWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
		},
	}
}
