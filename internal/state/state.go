// Package state remembers the last library root a session ran against.
package state

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const lastDirFile = "karasync/lastdir"

// LastDir returns the remembered library root, if one was saved and still
// exists as a directory.
func LastDir() (string, bool) {
	path, err := xdg.SearchStateFile(lastDirFile)
	if err != nil {
		return "", false
	}
	return readLastDir(path)
}

// SaveLastDir remembers root for the next session.
func SaveLastDir(root string) error {
	path, err := xdg.StateFile(lastDirFile)
	if err != nil {
		return err
	}
	return writeLastDir(path, root)
}

func readLastDir(path string) (string, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	dir := strings.TrimSpace(string(raw))
	if dir == "" {
		return "", false
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return dir, true
}

func writeLastDir(path, root string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(root+"\n"), 0o644)
}
