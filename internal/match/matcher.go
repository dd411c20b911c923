package match

import (
	"log/slog"
	"sort"

	"karasync/internal/catalog"
	"karasync/internal/library"
	"karasync/internal/logging"
)

// Confidence grades how a file was bound to a record.
type Confidence int

const (
	ConfidenceNone Confidence = iota
	ConfidenceFuzzy
	ConfidenceExact
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceExact:
		return "exact"
	case ConfidenceFuzzy:
		return "fuzzy"
	}
	return "none"
}

// Method names the strategy that produced a binding.
type Method string

const (
	MethodNone       Method = "none"
	MethodIdentifier Method = "identifier"
	MethodFuzzy      Method = "fuzzy"
)

// Result is the binding decision for one file. Exactly one Result exists per
// scanned file.
type Result struct {
	File       library.LocalFile
	Record     catalog.Record
	HasRecord  bool
	Confidence Confidence
	Method     Method
	Score      float64
	// Conflict is set when another file bound the same identifier.
	Conflict bool
}

// Matcher resolves files against an immutable catalog index.
type Matcher struct {
	index  *catalog.Index
	logger *slog.Logger
}

// NewMatcher constructs a matcher over the index.
func NewMatcher(index *catalog.Index, logger *slog.Logger) *Matcher {
	return &Matcher{
		index:  index,
		logger: logging.NewComponentLogger(logger, "matcher"),
	}
}

// Match binds one file. Files carrying an identifier never fall through to
// fuzzy search: an exact miss with an identifier present stays unmatched only
// if fuzzy search over the title guess also finds nothing.
func (m *Matcher) Match(file library.LocalFile) Result {
	result := Result{File: file, Confidence: ConfidenceNone, Method: MethodNone}

	if file.ID != "" {
		if rec, ok := m.index.LookupExact(file.ID); ok {
			result.Record = rec
			result.HasRecord = true
			result.Confidence = ConfidenceExact
			result.Method = MethodIdentifier
			result.Score = 1
			return result
		}
	}

	candidates := m.index.SearchFuzzy(file.TitleGuess, file.ArtistGuess)
	if len(candidates) == 0 {
		m.logger.Debug("no candidates", logging.String("path", file.Path))
		return result
	}

	best := candidates[0]
	result.Record = best.Record
	result.HasRecord = true
	result.Confidence = ConfidenceFuzzy
	result.Method = MethodFuzzy
	result.Score = best.Score
	m.logger.Debug("fuzzy match",
		logging.String("path", file.Path),
		logging.String("record", best.Record.ID),
		logging.Float64("score", best.Score))
	return result
}

// MatchAll binds every file and then demotes duplicate bindings to Conflict.
// The returned slice preserves input order.
func (m *Matcher) MatchAll(files []library.LocalFile) []Result {
	results := make([]Result, len(files))
	for i, file := range files {
		if file.Err != nil {
			results[i] = Result{File: file, Confidence: ConfidenceNone, Method: MethodNone}
			continue
		}
		results[i] = m.Match(file)
	}
	DemoteConflicts(results)
	return results
}

// DemoteConflicts marks every result whose record identifier is bound by more
// than one file. Both sides of a duplicate binding are demoted; neither is
// eligible for rewrite.
func DemoteConflicts(results []Result) {
	bound := make(map[string]int)
	for _, r := range results {
		if r.HasRecord {
			bound[r.Record.ID]++
		}
	}
	for i := range results {
		if results[i].HasRecord && bound[results[i].Record.ID] > 1 {
			results[i].Conflict = true
		}
	}
}

// SortByPath orders results lexically by file path for deterministic
// reporting.
func SortByPath(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].File.Path < results[j].File.Path
	})
}
