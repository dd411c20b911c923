package catalog

import "strconv"

// Record is one catalog entry describing a song's canonical metadata.
// Identifiers are unique within a snapshot and versions only increase across
// snapshot releases.
type Record struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	DurationSeconds int    `json:"duration_seconds"`
	Fingerprint     string `json:"fingerprint"`
	Version         int    `json:"version"`
}

// Field returns the value of the named metadata field as a string.
// Recognized names match the preset template vocabulary.
func (r Record) Field(name string) (string, bool) {
	switch name {
	case "id":
		return r.ID, true
	case "title":
		return r.Title, true
	case "artist":
		return r.Artist, true
	case "version":
		return strconv.Itoa(r.Version), true
	case "duration":
		return strconv.Itoa(r.DurationSeconds), true
	case "fingerprint":
		return r.Fingerprint, true
	}
	return "", false
}

// FieldNames lists the metadata fields a preset may reference.
func FieldNames() []string {
	return []string{"id", "title", "artist", "version", "duration", "fingerprint"}
}
