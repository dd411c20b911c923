package report

import (
	"encoding/json"
	"io"
	"sort"

	"karasync/internal/catalog"
)

// Status classifies what happened to one scanned file.
type Status string

const (
	StatusUpdated        Status = "updated"
	StatusAlreadyCurrent Status = "already-current"
	StatusUnmatched      Status = "unmatched"
	StatusConflict       Status = "conflict"
	StatusError          Status = "error"
)

// ErrorKind refines StatusError.
type ErrorKind string

const (
	ErrorAccessDenied  ErrorKind = "access-denied"
	ErrorRewriteFailed ErrorKind = "rewrite-failed"
	ErrorNameCollision ErrorKind = "name-collision"
)

// Outcome is the final disposition of one file.
type Outcome struct {
	Path      string    `json:"path"`
	Status    Status    `json:"status"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	RecordID  string    `json:"record_id,omitempty"`
	// NewPath is set on updated outcomes whose rewrite renamed the file.
	NewPath string `json:"new_path,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// MissingRecord names a catalog record no library file bound during the
// session.
type MissingRecord struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// Counts summarizes a report.
type Counts struct {
	Total          int `json:"total"`
	Updated        int `json:"updated"`
	AlreadyCurrent int `json:"already_current"`
	Unmatched      int `json:"unmatched"`
	Conflicts      int `json:"conflicts"`
	Errors         int `json:"errors"`
}

// Report is the full result of one session.
type Report struct {
	Root     string          `json:"root"`
	Outcomes []Outcome       `json:"outcomes"`
	Missing  []MissingRecord `json:"missing_records"`
	Counts   Counts          `json:"counts"`
}

// Builder accumulates outcomes during a session and seals them into a Report.
type Builder struct {
	root     string
	outcomes []Outcome
	bound    map[string]bool
}

// NewBuilder starts a report for one library root.
func NewBuilder(root string) *Builder {
	return &Builder{root: root, bound: make(map[string]bool)}
}

// Add records one file's outcome. Bound record identifiers are tracked so the
// missing-records summary can be derived at seal time.
func (b *Builder) Add(outcome Outcome) {
	b.outcomes = append(b.outcomes, outcome)
	if outcome.RecordID != "" {
		b.bound[outcome.RecordID] = true
	}
}

// Seal orders outcomes lexically by path, computes counts, and derives the
// records in the index that no file bound.
func (b *Builder) Seal(index *catalog.Index) Report {
	outcomes := make([]Outcome, len(b.outcomes))
	copy(outcomes, b.outcomes)
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].Path < outcomes[j].Path
	})

	var counts Counts
	counts.Total = len(outcomes)
	for _, o := range outcomes {
		switch o.Status {
		case StatusUpdated:
			counts.Updated++
		case StatusAlreadyCurrent:
			counts.AlreadyCurrent++
		case StatusUnmatched:
			counts.Unmatched++
		case StatusConflict:
			counts.Conflicts++
		case StatusError:
			counts.Errors++
		}
	}

	missing := make([]MissingRecord, 0)
	if index != nil {
		for _, rec := range index.Records() {
			if !b.bound[rec.ID] {
				missing = append(missing, MissingRecord{ID: rec.ID, Title: rec.Title, Artist: rec.Artist})
			}
		}
		sort.Slice(missing, func(i, j int) bool { return missing[i].ID < missing[j].ID })
	}

	return Report{Root: b.root, Outcomes: outcomes, Missing: missing, Counts: counts}
}

// HasErrors reports whether any file ended in an error outcome.
func (r Report) HasErrors() bool {
	return r.Counts.Errors > 0
}

// WriteJSON serializes the report with stable field and element order.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
