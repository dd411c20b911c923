package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers classify failures raised by pipeline stages. Fatal markers
// abort the session before any file is touched; per-file markers are isolated
// to a single file's outcome and never stop the batch.
var (
	// ErrConfig marks a malformed or unvalidatable configuration or preset. Fatal.
	ErrConfig = errors.New("configuration error")
	// ErrSnapshot marks a metadata snapshot integrity fault. Fatal.
	ErrSnapshot = errors.New("snapshot integrity error")
	// ErrFileAccess marks a per-file read failure (permissions, locked file).
	ErrFileAccess = errors.New("file access error")
	// ErrRewrite marks a rolled-back rewrite transaction.
	ErrRewrite = errors.New("rewrite transaction error")
	// ErrNameCollision marks a rewrite whose target filename was claimed by
	// another file in the same session.
	ErrNameCollision = errors.New("target name collision")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrRewrite
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err should abort the whole session rather than a
// single file.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfig) || errors.Is(err, ErrSnapshot)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "stage failure"
	}
	return strings.Join(parts, ": ")
}
