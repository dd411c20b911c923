package rewrite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"karasync/internal/apperr"
	"karasync/internal/catalog"
	"karasync/internal/library"
	"karasync/internal/match"
	"karasync/internal/preset"
	"karasync/internal/tags"
)

type fakeStore struct {
	payloads  map[string]tags.Payload
	failWrite error
	failRead  error
	// corrupt makes Read return a payload that differs from what was written.
	corrupt bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{payloads: make(map[string]tags.Payload)}
}

func (s *fakeStore) Read(path string) (tags.Payload, error) {
	if s.failRead != nil {
		return tags.Payload{}, s.failRead
	}
	p := s.payloads[path]
	if s.corrupt {
		p.Title = p.Title + " (mangled)"
	}
	return p, nil
}

func (s *fakeStore) Write(path string, p tags.Payload) error {
	if s.failWrite != nil {
		return s.failWrite
	}
	s.payloads[path] = p
	return nil
}

var planRecord = catalog.Record{
	ID:      "abc123",
	Title:   "Sound of Silence",
	Artist:  "Disturbed",
	Version: 3,
}

func boundResult(path string, payload tags.Payload) match.Result {
	return match.Result{
		File:      library.LocalFile{Path: path, Payload: payload},
		Record:    planRecord,
		HasRecord: true,
	}
}

func TestBuildPlan(t *testing.T) {
	rw := NewRewriter(preset.Default())

	result := boundResult("/lib/old name.mp3", tags.Payload{Date: "2024-06-01"})
	plan := rw.BuildPlan(result)

	if plan.Target != "/lib/Disturbed - Sound of Silence [abc123].mp3" {
		t.Errorf("Target = %q", plan.Target)
	}
	if !plan.Renames {
		t.Error("expected a rename")
	}
	if plan.Payload.Date != "2024-06-01" {
		t.Errorf("embedded date must survive: %q", plan.Payload.Date)
	}
	if plan.Payload.ID != "abc123" || plan.Payload.Version != "3" {
		t.Errorf("markers missing: %+v", plan.Payload)
	}
}

func TestAlreadyCurrent(t *testing.T) {
	rw := NewRewriter(preset.Default())

	path := "/lib/Disturbed - Sound of Silence [abc123].mp3"
	current := rw.BuildPlan(boundResult(path, tags.Payload{})).Payload
	if !AlreadyCurrent(library.LocalFile{Path: path, Payload: current}, rw.BuildPlan(boundResult(path, current))) {
		t.Error("identical state should be current")
	}

	stale := current
	stale.Title = "Old Title"
	if AlreadyCurrent(library.LocalFile{Path: path, Payload: stale}, rw.BuildPlan(boundResult(path, stale))) {
		t.Error("differing payload should not be current")
	}

	plan := rw.BuildPlan(boundResult("/lib/other.mp3", current))
	if AlreadyCurrent(library.LocalFile{Path: "/lib/other.mp3", Payload: current}, plan) {
		t.Error("pending rename should not be current")
	}
}

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("media bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestApplyCommitsRename(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "01 - misnamed.mp3")
	store := newFakeStore()
	rw := NewRewriter(preset.Default(), WithStore(store))

	plan := rw.BuildPlan(boundResult(src, tags.Payload{}))
	if err := rw.Apply(context.Background(), plan); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if _, err := os.Stat(plan.Target); err != nil {
		t.Fatalf("target missing: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("original should be gone after a rename")
	}
	got, err := os.ReadFile(plan.Target)
	if err != nil || string(got) != "media bytes" {
		t.Fatalf("target content wrong: %q, %v", got, err)
	}
	if names := dirEntries(t, dir); len(names) != 1 {
		t.Fatalf("directory should hold only the target, got %v", names)
	}
}

func TestApplyTagOnly(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "Disturbed - Sound of Silence [abc123].mp3")
	store := newFakeStore()
	rw := NewRewriter(preset.Default(), WithStore(store))

	plan := rw.BuildPlan(boundResult(src, tags.Payload{Title: "stale"}))
	if plan.Renames {
		t.Fatalf("expected tag-only plan, target %q", plan.Target)
	}
	if err := rw.Apply(context.Background(), plan); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if names := dirEntries(t, dir); len(names) != 1 || names[0] != filepath.Base(src) {
		t.Fatalf("unexpected directory state: %v", names)
	}
}

func TestApplyWriteFailureLeavesOriginal(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "01 - misnamed.mp3")
	store := newFakeStore()
	store.failWrite = errors.New("container refused the frame")
	rw := NewRewriter(preset.Default(), WithStore(store))

	plan := rw.BuildPlan(boundResult(src, tags.Payload{}))
	err := rw.Apply(context.Background(), plan)
	if !errors.Is(err, apperr.ErrRewrite) {
		t.Fatalf("expected rewrite error, got %v", err)
	}

	got, readErr := os.ReadFile(src)
	if readErr != nil || string(got) != "media bytes" {
		t.Fatalf("original damaged: %q, %v", got, readErr)
	}
	if names := dirEntries(t, dir); len(names) != 1 {
		t.Fatalf("scratch residue left behind: %v", names)
	}
}

func TestApplyVerifyMismatchLeavesOriginal(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "01 - misnamed.mp3")
	store := newFakeStore()
	store.corrupt = true
	rw := NewRewriter(preset.Default(), WithStore(store))

	err := rw.Apply(context.Background(), rw.BuildPlan(boundResult(src, tags.Payload{})))
	if !errors.Is(err, apperr.ErrRewrite) {
		t.Fatalf("expected rewrite error, got %v", err)
	}
	if names := dirEntries(t, dir); len(names) != 1 || names[0] != filepath.Base(src) {
		t.Fatalf("unexpected directory state: %v", names)
	}
}

func TestApplyNameCollision(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "01 - misnamed.mp3")
	squatter := writeSource(t, dir, "Disturbed - Sound of Silence [abc123].mp3")
	store := newFakeStore()
	rw := NewRewriter(preset.Default(), WithStore(store))

	err := rw.Apply(context.Background(), rw.BuildPlan(boundResult(src, tags.Payload{})))
	if !errors.Is(err, apperr.ErrNameCollision) {
		t.Fatalf("expected name collision, got %v", err)
	}

	for _, path := range []string{src, squatter} {
		got, readErr := os.ReadFile(path)
		if readErr != nil || string(got) != "media bytes" {
			t.Fatalf("%s damaged: %q, %v", path, got, readErr)
		}
	}
	if names := dirEntries(t, dir); len(names) != 2 {
		t.Fatalf("unexpected directory state: %v", names)
	}
}

func TestApplyHonorsCancellation(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "01 - misnamed.mp3")
	rw := NewRewriter(preset.Default(), WithStore(newFakeStore()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := rw.Apply(ctx, rw.BuildPlan(boundResult(src, tags.Payload{})))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	if names := dirEntries(t, dir); len(names) != 1 {
		t.Fatalf("cancelled apply must not touch the directory: %v", names)
	}
}
