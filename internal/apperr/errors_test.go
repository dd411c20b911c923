package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapPreservesMarker(t *testing.T) {
	underlying := fmt.Errorf("disk full")
	err := Wrap(ErrRewrite, "rewriting", "replace original", "atomic rename failed", underlying)

	if !errors.Is(err, ErrRewrite) {
		t.Fatalf("expected ErrRewrite marker, got %v", err)
	}
	if !errors.Is(err, underlying) {
		t.Fatalf("expected underlying error preserved, got %v", err)
	}
}

func TestWrapNilMarkerDefaults(t *testing.T) {
	err := Wrap(nil, "rewriting", "", "", nil)
	if !errors.Is(err, ErrRewrite) {
		t.Fatalf("nil marker should default to ErrRewrite, got %v", err)
	}
}

func TestWrapDetailComposition(t *testing.T) {
	err := Wrap(ErrConfig, "preset", "parse", "unknown token", nil)
	want := "configuration error: preset: parse: unknown token"
	if err.Error() != want {
		t.Fatalf("Wrap detail = %q, want %q", err.Error(), want)
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		fatal bool
	}{
		{"config", Wrap(ErrConfig, "config", "load", "", nil), true},
		{"snapshot", Wrap(ErrSnapshot, "catalog", "build index", "", nil), true},
		{"file access", Wrap(ErrFileAccess, "scan", "open", "", nil), false},
		{"rewrite", Wrap(ErrRewrite, "rewrite", "commit", "", nil), false},
		{"collision", Wrap(ErrNameCollision, "rewrite", "claim", "", nil), false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.fatal {
				t.Errorf("IsFatal(%v) = %v, want %v", tt.err, got, tt.fatal)
			}
		})
	}
}
