package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// snapshotDocument accepts the wrapped snapshot layout produced by the
// metadata fetcher.
type snapshotDocument struct {
	Records []Record `json:"records"`
}

// LoadSnapshot reads a snapshot file from disk. Both a bare JSON array of
// records and a {"records": [...]} document are accepted.
func LoadSnapshot(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return ParseSnapshot(data)
}

// ParseSnapshot decodes snapshot JSON into the ordered record list.
func ParseSnapshot(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if doc.Records == nil {
		return nil, fmt.Errorf("parse snapshot: no records field present")
	}
	return doc.Records, nil
}
