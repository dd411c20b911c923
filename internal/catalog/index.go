package catalog

import (
	"fmt"
	"sort"

	"karasync/internal/apperr"
	"karasync/internal/textutil"
)

// DuplicateIdentifierError reports two snapshot records sharing an identifier.
type DuplicateIdentifierError struct {
	ID string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("duplicate identifier %q in snapshot", e.ID)
}

// Candidate pairs a record with its fuzzy similarity score.
type Candidate struct {
	Record Record
	Score  float64
}

// Index is the immutable in-memory lookup over one snapshot.
type Index struct {
	byID     map[string]Record
	records  []Record
	normed   []normalizedRecord
	scorer   Scorer
	minScore float64
}

type normalizedRecord struct {
	title  string
	artist string
}

// Option customizes index construction.
type Option func(*Index)

// WithScorer replaces the default similarity function.
func WithScorer(s Scorer) Option {
	return func(x *Index) {
		if s != nil {
			x.scorer = s
		}
	}
}

// WithMinScore sets the minimum score for fuzzy candidates.
func WithMinScore(min float64) Option {
	return func(x *Index) { x.minScore = min }
}

// NewIndex builds the lookup structures for a snapshot. Fails with a
// snapshot-integrity error when two records share an identifier.
func NewIndex(records []Record, opts ...Option) (*Index, error) {
	x := &Index{
		byID:     make(map[string]Record, len(records)),
		records:  records,
		normed:   make([]normalizedRecord, len(records)),
		scorer:   DefaultScorer,
		minScore: 0.82,
	}
	for _, opt := range opts {
		opt(x)
	}

	for i, rec := range records {
		if _, seen := x.byID[rec.ID]; seen {
			dup := &DuplicateIdentifierError{ID: rec.ID}
			return nil, apperr.Wrap(apperr.ErrSnapshot, "catalog", "build index", dup.Error(), dup)
		}
		x.byID[rec.ID] = rec
		x.normed[i] = normalizedRecord{
			title:  textutil.Normalize(rec.Title),
			artist: textutil.Normalize(rec.Artist),
		}
	}
	return x, nil
}

// Len returns the number of indexed records.
func (x *Index) Len() int {
	return len(x.records)
}

// Records returns the snapshot's records in snapshot order.
func (x *Index) Records() []Record {
	return x.records
}

// LookupExact returns the record with the given identifier, if present.
func (x *Index) LookupExact(id string) (Record, bool) {
	rec, ok := x.byID[id]
	return rec, ok
}

// SearchFuzzy scores every record against the title/artist query and returns
// candidates above the minimum threshold. Ordering is deterministic:
// descending score, then descending catalog version, then ascending
// identifier.
func (x *Index) SearchFuzzy(title, artist string) []Candidate {
	if textutil.Normalize(title) == "" {
		return nil
	}
	var out []Candidate
	for i, rec := range x.records {
		score := x.scorer(title, artist, x.normed[i].title, x.normed[i].artist)
		if score < x.minScore {
			continue
		}
		out = append(out, Candidate{Record: rec, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Record.Version != out[j].Record.Version {
			return out[i].Record.Version > out[j].Record.Version
		}
		return out[i].Record.ID < out[j].Record.ID
	})
	return out
}
