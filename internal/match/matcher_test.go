package match

import (
	"errors"
	"testing"

	"karasync/internal/catalog"
	"karasync/internal/library"
	"karasync/internal/logging"
)

func buildIndex(t *testing.T, opts ...catalog.Option) *catalog.Index {
	t.Helper()
	index, err := catalog.NewIndex([]catalog.Record{
		{ID: "abc123", Title: "Sound of Silence", Artist: "Disturbed", Version: 3},
		{ID: "def456", Title: "Highway to Hell", Artist: "AC/DC", Version: 1},
		{ID: "ghi789", Title: "Poker Face", Artist: "Lady Gaga", Version: 2},
	}, opts...)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return index
}

func TestMatchExactDominatesFuzzy(t *testing.T) {
	panicScorer := func(qt, qa, title, artist string) float64 {
		panic("fuzzy search must not run for an identifier hit")
	}
	m := NewMatcher(buildIndex(t, catalog.WithScorer(panicScorer)), logging.NewNop())

	result := m.Match(library.LocalFile{
		Path:       "/lib/x.mp3",
		ID:         "abc123",
		TitleGuess: "Highway to Hell",
	})
	if !result.HasRecord || result.Confidence != ConfidenceExact {
		t.Fatalf("expected exact match, got %+v", result)
	}
	if result.Record.ID != "abc123" || result.Method != MethodIdentifier {
		t.Errorf("wrong binding: %+v", result)
	}
	if result.Score != 1 {
		t.Errorf("exact score = %v, want 1", result.Score)
	}
}

func TestMatchIdentifierMissFallsBackToFuzzy(t *testing.T) {
	m := NewMatcher(buildIndex(t), logging.NewNop())

	result := m.Match(library.LocalFile{
		Path:        "/lib/y.mp3",
		ID:          "zzz999",
		TitleGuess:  "Sound of Silence",
		ArtistGuess: "Disturbed",
	})
	if !result.HasRecord || result.Confidence != ConfidenceFuzzy {
		t.Fatalf("expected fuzzy fallback, got %+v", result)
	}
	if result.Record.ID != "abc123" {
		t.Errorf("bound to %q, want abc123", result.Record.ID)
	}
}

func TestMatchNoCandidates(t *testing.T) {
	m := NewMatcher(buildIndex(t), logging.NewNop())

	result := m.Match(library.LocalFile{Path: "/lib/z.mp3", TitleGuess: "Bohemian Rhapsody"})
	if result.HasRecord || result.Confidence != ConfidenceNone || result.Method != MethodNone {
		t.Errorf("expected no binding, got %+v", result)
	}
}

func TestMatchTieBreaksAreDeterministic(t *testing.T) {
	flat := func(qt, qa, title, artist string) float64 { return 0.9 }
	m := NewMatcher(buildIndex(t, catalog.WithScorer(flat)), logging.NewNop())

	result := m.Match(library.LocalFile{Path: "/lib/t.mp3", TitleGuess: "anything"})
	if !result.HasRecord {
		t.Fatal("expected a binding")
	}
	// All candidates score 0.9; highest version wins.
	if result.Record.ID != "abc123" {
		t.Errorf("tie broke to %q, want abc123 (version 3)", result.Record.ID)
	}
}

func TestMatchAllSkipsErroredFiles(t *testing.T) {
	m := NewMatcher(buildIndex(t), logging.NewNop())

	results := m.MatchAll([]library.LocalFile{
		{Path: "/lib/bad.mp3", ID: "abc123", Err: errors.New("permission denied")},
		{Path: "/lib/good.mp3", ID: "abc123"},
	})
	if results[0].HasRecord {
		t.Errorf("errored file must not bind: %+v", results[0])
	}
	if !results[1].HasRecord || results[1].Conflict {
		t.Errorf("healthy file should bind without conflict: %+v", results[1])
	}
}

func TestDemoteConflicts(t *testing.T) {
	m := NewMatcher(buildIndex(t), logging.NewNop())

	results := m.MatchAll([]library.LocalFile{
		{Path: "/lib/a.mp3", ID: "abc123"},
		{Path: "/lib/b.mp3", ID: "abc123"},
		{Path: "/lib/c.mp3", ID: "def456"},
	})
	if !results[0].Conflict || !results[1].Conflict {
		t.Errorf("both duplicate bindings must be demoted: %+v %+v", results[0], results[1])
	}
	if results[0].HasRecord != true || results[1].HasRecord != true {
		t.Errorf("demotion keeps the binding visible for reporting")
	}
	if results[2].Conflict {
		t.Errorf("unrelated binding demoted: %+v", results[2])
	}
}

func TestSortByPath(t *testing.T) {
	results := []Result{
		{File: library.LocalFile{Path: "/lib/b.mp3"}},
		{File: library.LocalFile{Path: "/lib/a.mp3"}},
		{File: library.LocalFile{Path: "/lib/a.flac"}},
	}
	SortByPath(results)
	want := []string{"/lib/a.flac", "/lib/a.mp3", "/lib/b.mp3"}
	for i, w := range want {
		if results[i].File.Path != w {
			t.Fatalf("order[%d] = %q, want %q", i, results[i].File.Path, w)
		}
	}
}
