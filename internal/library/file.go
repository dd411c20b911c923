package library

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"karasync/internal/tags"
)

// LocalFile describes one scanned media file. Descriptors are created fresh
// on every walk and are never persisted; only the rewriter mutates one, and
// only after a committed transaction.
type LocalFile struct {
	Path string
	Kind tags.Kind

	// Payload is the embedded tag state read during the scan.
	Payload tags.Payload

	// ID is the embedded or filename-derived identifier, empty when absent.
	ID string
	// Version is the embedded catalog-version marker.
	Version    int
	HasVersion bool

	// TitleGuess and ArtistGuess feed fuzzy matching when no identifier
	// resolves. They come from tags when present, else from the filename.
	TitleGuess  string
	ArtistGuess string

	// Date is the embedded archive date, used for cutoff filtering.
	Date    time.Time
	HasDate bool

	// Err carries a per-file access fault; such descriptors skip matching
	// and surface as access-denied outcomes.
	Err error

	fingerprint string
}

// ContentFingerprint lazily computes and caches the SHA-256 of the file's
// bytes, hex encoded.
func (f *LocalFile) ContentFingerprint() (string, error) {
	if f.fingerprint != "" {
		return f.fingerprint, nil
	}
	handle, err := os.Open(f.Path)
	if err != nil {
		return "", fmt.Errorf("open for fingerprint: %w", err)
	}
	defer handle.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, handle); err != nil {
		return "", fmt.Errorf("hash content: %w", err)
	}
	f.fingerprint = hex.EncodeToString(hasher.Sum(nil))
	return f.fingerprint, nil
}
