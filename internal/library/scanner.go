package library

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"karasync/internal/apperr"
	"karasync/internal/logging"
	"karasync/internal/tags"
)

// Scanner produces LocalFile descriptors for every candidate under a root.
type Scanner struct {
	root   string
	cutoff time.Time
	store  tags.Store
	logger *slog.Logger
}

// Option customizes scanner construction.
type Option func(*Scanner)

// WithCutoff excludes files whose embedded archive date is strictly before t.
// A zero time disables the cutoff.
func WithCutoff(t time.Time) Option {
	return func(s *Scanner) { s.cutoff = t }
}

// WithStore replaces the tag store (used in tests).
func WithStore(store tags.Store) Option {
	return func(s *Scanner) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logging.NewComponentLogger(logger, "scanner")
	}
}

// NewScanner constructs a scanner rooted at the given directory.
func NewScanner(root string, opts ...Option) *Scanner {
	s := &Scanner{
		root:   root,
		store:  tags.DiskStore{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the scan root.
func (s *Scanner) Root() string {
	return s.root
}

// Walk traverses the root and calls fn once per candidate file. The sequence
// is lazy and restartable; calling Walk again re-reads the tree. Per-file
// read failures are delivered as descriptors with Err set rather than
// aborting the walk. Returns the callback's error or ctx.Err() on
// cancellation.
func (s *Scanner) Walk(ctx context.Context, fn func(LocalFile) error) error {
	return filepath.WalkDir(s.root, func(path string, entry fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			if path == s.root {
				return apperr.Wrap(apperr.ErrFileAccess, "scan", "open root", s.root, err)
			}
			s.logger.Warn("skipping unreadable entry", logging.String("path", path), logging.Error(err))
			return nil
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") && path != s.root {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if tags.DetectKind(path) == tags.KindUnknown {
			return nil
		}

		file, keep := s.describe(path)
		if !keep {
			return nil
		}
		return fn(file)
	})
}

// describe builds the descriptor for one candidate path. The second return is
// false when the file is excluded by the cutoff policy.
func (s *Scanner) describe(path string) (LocalFile, bool) {
	file := LocalFile{Path: path, Kind: tags.DetectKind(path)}

	payload, err := s.store.Read(path)
	if err != nil {
		file.Err = apperr.Wrap(apperr.ErrFileAccess, "scan", "read tags", path, err)
		return file, true
	}
	file.Payload = payload

	file.ID = payload.ID
	fallbackID, fallbackTitle, fallbackArtist := parseFilename(path)
	if file.ID == "" {
		file.ID = fallbackID
	}

	if payload.Version != "" {
		if v, err := strconv.Atoi(strings.TrimSpace(payload.Version)); err == nil {
			file.Version = v
			file.HasVersion = true
		}
	}

	file.TitleGuess = payload.Title
	if file.TitleGuess == "" {
		file.TitleGuess = fallbackTitle
	}
	file.ArtistGuess = payload.Artist
	if file.ArtistGuess == "" {
		file.ArtistGuess = fallbackArtist
	}

	if payload.Date != "" {
		if parsed, err := time.Parse("2006-01-02", strings.TrimSpace(payload.Date)); err == nil {
			file.Date = parsed
			file.HasDate = true
		}
	}

	// Pre-cutoff downloads are not compatible with the current archive
	// layout: a file dated strictly before the cutoff never reaches the
	// matcher. Files without a parseable date are kept.
	if !s.cutoff.IsZero() && file.HasDate && file.Date.Before(s.cutoff) {
		s.logger.Debug("excluding pre-cutoff file",
			logging.String("path", path),
			logging.String("date", payload.Date))
		return file, false
	}

	return file, true
}
