package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"karasync/internal/apperr"
	"karasync/internal/catalog"
	"karasync/internal/library"
	"karasync/internal/logging"
	"karasync/internal/match"
	"karasync/internal/preset"
	"karasync/internal/report"
	"karasync/internal/rewrite"
	"karasync/internal/tags"
)

// lockFileName is hidden so the scanner never picks it up.
const lockFileName = ".karasync.lock"

const defaultWorkers = 4

// Result is the outcome of one session run.
type Result struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Report    report.Report
}

// Session drives one scan-match-rewrite pass over a library root.
type Session struct {
	root    string
	index   *catalog.Index
	rules   *preset.RuleSet
	store   tags.Store
	cutoff  time.Time
	workers int
	dryRun  bool
	verify  bool
	logger  *slog.Logger
}

// Option customizes a session.
type Option func(*Session)

// WithWorkers bounds concurrent file processing.
func WithWorkers(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithDryRun reports what would change without touching any file.
func WithDryRun(dry bool) Option {
	return func(s *Session) { s.dryRun = dry }
}

// WithVerify compares each bound file's content hash against the catalog
// fingerprint and flags drift in the outcome detail.
func WithVerify(verify bool) Option {
	return func(s *Session) { s.verify = verify }
}

// WithStore replaces the tag persistence backend.
func WithStore(store tags.Store) Option {
	return func(s *Session) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCutoff excludes files whose embedded archive date is strictly older.
func WithCutoff(t time.Time) Option {
	return func(s *Session) { s.cutoff = t }
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logging.NewComponentLogger(logger, "engine")
		}
	}
}

// NewSession builds a session over an immutable index and naming preset.
func NewSession(root string, index *catalog.Index, rules *preset.RuleSet, opts ...Option) *Session {
	s := &Session{
		root:    root,
		index:   index,
		rules:   rules,
		store:   tags.DiskStore{},
		workers: defaultWorkers,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the session. The library root is locked for the duration; a
// second session against the same root fails immediately. Cancellation is
// observed between files, so an interrupted run still reports every file it
// finished.
func (s *Session) Run(ctx context.Context) (Result, error) {
	started := time.Now()
	result := Result{RunID: uuid.NewString(), StartedAt: started}

	lock := flock.New(filepath.Join(s.root, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return result, fmt.Errorf("acquire session lock: %w", err)
	}
	if !locked {
		return result, fmt.Errorf("another session is already running against %s", s.root)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	s.logger.Info("session started",
		logging.String("run_id", result.RunID),
		logging.String("root", s.root),
		logging.Int("records", s.index.Len()),
		logging.Bool("dry_run", s.dryRun))

	scanner := library.NewScanner(s.root,
		library.WithStore(s.store),
		library.WithCutoff(s.cutoff),
		library.WithLogger(s.logger))

	var files []library.LocalFile
	if err := scanner.Walk(ctx, func(file library.LocalFile) error {
		files = append(files, file)
		return nil
	}); err != nil && !errors.Is(err, context.Canceled) {
		return result, err
	}

	matcher := match.NewMatcher(s.index, s.logger)
	results := matcher.MatchAll(files)

	builder := report.NewBuilder(s.root)
	var mu sync.Mutex

	rewriter := rewrite.NewRewriter(s.rules,
		rewrite.WithStore(s.store),
		rewrite.WithLogger(s.logger))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, res := range results {
		res := res
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcome, processed := s.process(gctx, rewriter, res)
			if !processed {
				return nil
			}
			mu.Lock()
			builder.Add(outcome)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	result.Report = builder.Seal(s.index)
	result.Duration = time.Since(started)
	s.logger.Info("session finished",
		logging.String("run_id", result.RunID),
		logging.Int("total", result.Report.Counts.Total),
		logging.Int("updated", result.Report.Counts.Updated),
		logging.Int("errors", result.Report.Counts.Errors),
		logging.Duration("elapsed", result.Duration))
	return result, nil
}

// process decides and, outside dry runs, commits one file's outcome. The
// second return is false when cancellation preempted the file.
func (s *Session) process(ctx context.Context, rewriter *rewrite.Rewriter, res match.Result) (report.Outcome, bool) {
	file := res.File

	if file.Err != nil {
		return report.Outcome{
			Path:      file.Path,
			Status:    report.StatusError,
			ErrorKind: report.ErrorAccessDenied,
			Detail:    file.Err.Error(),
		}, true
	}
	if !res.HasRecord {
		return report.Outcome{Path: file.Path, Status: report.StatusUnmatched}, true
	}
	if res.Conflict {
		return report.Outcome{
			Path:     file.Path,
			Status:   report.StatusConflict,
			RecordID: res.Record.ID,
			Detail:   "identifier bound by multiple files",
		}, true
	}

	var drift string
	if s.verify && res.Record.Fingerprint != "" {
		if fp, fpErr := file.ContentFingerprint(); fpErr == nil && fp != res.Record.Fingerprint {
			drift = "content fingerprint differs from catalog"
		}
	}

	plan := rewriter.BuildPlan(res)
	if rewrite.AlreadyCurrent(file, plan) {
		return report.Outcome{
			Path:     file.Path,
			Status:   report.StatusAlreadyCurrent,
			RecordID: res.Record.ID,
			Detail:   drift,
		}, true
	}

	outcome := report.Outcome{
		Path:     file.Path,
		Status:   report.StatusUpdated,
		RecordID: res.Record.ID,
		Detail:   drift,
	}
	if plan.Renames {
		outcome.NewPath = plan.Target
	}
	if s.dryRun {
		if outcome.Detail == "" {
			outcome.Detail = "dry run, no changes written"
		}
		return outcome, true
	}

	if err := rewriter.Apply(ctx, plan); err != nil {
		if errors.Is(err, context.Canceled) {
			return report.Outcome{}, false
		}
		outcome.Status = report.StatusError
		outcome.NewPath = ""
		outcome.Detail = err.Error()
		if errors.Is(err, apperr.ErrNameCollision) {
			outcome.ErrorKind = report.ErrorNameCollision
		} else {
			outcome.ErrorKind = report.ErrorRewriteFailed
		}
		s.logger.Warn("rewrite failed",
			logging.String("path", file.Path),
			logging.Error(err))
		return outcome, true
	}
	return outcome, true
}
