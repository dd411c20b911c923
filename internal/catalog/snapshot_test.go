package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseSnapshotArray(t *testing.T) {
	data := []byte(`[
		{"id":"abc123","title":"Sound of Silence","artist":"Disturbed","duration_seconds":248,"fingerprint":"aa","version":3}
	]`)
	records, err := ParseSnapshot(data)
	if err != nil {
		t.Fatalf("ParseSnapshot: %v", err)
	}
	if len(records) != 1 || records[0].ID != "abc123" || records[0].Version != 3 {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestParseSnapshotWrapped(t *testing.T) {
	data := []byte(`{"records":[{"id":"x","title":"T","artist":"A","version":1}]}`)
	records, err := ParseSnapshot(data)
	if err != nil {
		t.Fatalf("ParseSnapshot: %v", err)
	}
	if len(records) != 1 || records[0].ID != "x" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestParseSnapshotMalformed(t *testing.T) {
	if _, err := ParseSnapshot([]byte(`{"something":"else"}`)); err == nil {
		t.Fatal("expected error for document without records")
	}
	if _, err := ParseSnapshot([]byte(`not json`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(`[{"id":"a","title":"T","artist":"A","version":1}]`), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	records, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRecordField(t *testing.T) {
	rec := Record{ID: "abc", Title: "T", Artist: "A", Version: 3, DurationSeconds: 200, Fingerprint: "fp"}
	tests := []struct {
		name string
		want string
	}{
		{"id", "abc"}, {"title", "T"}, {"artist", "A"},
		{"version", "3"}, {"duration", "200"}, {"fingerprint", "fp"},
	}
	for _, tt := range tests {
		got, ok := rec.Field(tt.name)
		if !ok || got != tt.want {
			t.Errorf("Field(%q) = %q, %v; want %q", tt.name, got, ok, tt.want)
		}
	}
	if _, ok := rec.Field("album"); ok {
		t.Error("Field(album) should be unknown")
	}
}
