package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"karasync/internal/catalog"
	"karasync/internal/config"
	"karasync/internal/testsupport"
)

type cliTestEnv struct {
	cfg         *config.Config
	libraryDir  string
	configPath  string
	historyPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "xdg-state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "xdg-data"))
	xdg.Reload()

	historyPath := filepath.Join(base, "history.db")
	cfg := testsupport.NewConfig(t, testsupport.WithHistory(historyPath))

	env := &cliTestEnv{
		cfg:         cfg,
		libraryDir:  cfg.Paths.LibraryDir,
		configPath:  filepath.Join(base, "config.toml"),
		historyPath: historyPath,
	}
	if err := os.MkdirAll(env.libraryDir, 0o755); err != nil {
		t.Fatalf("create library dir: %v", err)
	}

	writeSnapshot(t, cfg.Paths.SnapshotPath, []catalog.Record{
		{ID: "abc123", Title: "Dancing Queen", Artist: "ABBA", Version: 2},
		{ID: "def456", Title: "Waterloo", Artist: "ABBA", Version: 1},
	})

	raw, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(env.configPath, raw, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func writeSnapshot(t *testing.T, path string, records []catalog.Record) {
	t.Helper()
	raw, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestCLISyncScanAndHistory(t *testing.T) {
	env := setupCLITestEnv(t)

	src := filepath.Join(env.libraryDir, "ABBA - Dancing Queen.mp3")
	testsupport.WriteFile(t, src, 2048)

	out, _, err := runCLI(t, []string{"scan", "--path", env.libraryDir}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "1 updated")
	if _, statErr := os.Stat(src); statErr != nil {
		t.Fatalf("scan must not touch files: %v", statErr)
	}

	out, _, err = runCLI(t, []string{"sync", "--path", env.libraryDir}, env.configPath)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	requireContains(t, out, "1 updated")
	requireContains(t, out, "def456")

	renamed := filepath.Join(env.libraryDir, "ABBA - Dancing Queen [abc123].mp3")
	if _, statErr := os.Stat(renamed); statErr != nil {
		t.Fatalf("expected renamed file at %s: %v", renamed, statErr)
	}
	if _, statErr := os.Stat(src); !os.IsNotExist(statErr) {
		t.Fatal("original name should be gone after sync")
	}

	out, _, err = runCLI(t, []string{"sync", "--path", env.libraryDir, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	requireContains(t, out, `"already_current": 1`)

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, env.libraryDir)
}

func TestCLISyncFailsOnMissingSnapshot(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(env.cfg.Paths.SnapshotPath); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, []string{"sync", "--path", env.libraryDir}, env.configPath); err == nil {
		t.Fatal("expected snapshot load failure")
	}
}

func TestCLISyncReportsErrorsInExitStatus(t *testing.T) {
	env := setupCLITestEnv(t)

	for _, name := range []string{"copy one.mp3", "copy two.mp3"} {
		testsupport.WriteFile(t, filepath.Join(env.libraryDir, name), 1024)
	}

	// Two files that both resolve to the same record via their names would be
	// conflicts, not errors; force an error with an unreadable file instead.
	locked := filepath.Join(env.libraryDir, "ABBA - Waterloo.mp3")
	if err := os.WriteFile(locked, []byte("bytes"), 0o000); err != nil {
		t.Fatal(err)
	}
	if os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	_, _, err := runCLI(t, []string{"sync", "--path", env.libraryDir}, env.configPath)
	if err == nil {
		t.Fatal("expected nonzero result when a file errors")
	}
	requireContains(t, err.Error(), "finished with errors")
}
