package rewrite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"karasync/internal/apperr"
	"karasync/internal/fileutil"
	"karasync/internal/library"
	"karasync/internal/logging"
	"karasync/internal/match"
	"karasync/internal/preset"
	"karasync/internal/tags"
)

// Plan is the computed end state for one matched file.
type Plan struct {
	Source string
	// Target is the full path the file should end at. Equal to Source when
	// only tags change.
	Target  string
	Payload tags.Payload
	// Renames reports whether Target differs from Source.
	Renames bool
}

// Rewriter turns match results into committed file state.
type Rewriter struct {
	store  tags.Store
	rules  *preset.RuleSet
	logger *slog.Logger
}

// Option customizes a Rewriter.
type Option func(*Rewriter)

// WithStore substitutes the tag persistence backend.
func WithStore(store tags.Store) Option {
	return func(rw *Rewriter) {
		if store != nil {
			rw.store = store
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(rw *Rewriter) {
		if logger != nil {
			rw.logger = logging.NewComponentLogger(logger, "rewriter")
		}
	}
}

// NewRewriter builds a rewriter over a naming preset.
func NewRewriter(rules *preset.RuleSet, opts ...Option) *Rewriter {
	rw := &Rewriter{
		store:  tags.DiskStore{},
		rules:  rules,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(rw)
	}
	return rw
}

// BuildPlan computes the target path and tag payload for a bound result. The
// file's embedded archive date survives the rewrite unchanged.
func (rw *Rewriter) BuildPlan(result match.Result) Plan {
	file := result.File
	payload := rw.rules.TargetPayload(result.Record)
	payload.Date = file.Payload.Date

	stem := rw.rules.ExpandName(result.Record)
	target := filepath.Join(filepath.Dir(file.Path), stem+filepath.Ext(file.Path))
	return Plan{
		Source:  file.Path,
		Target:  target,
		Payload: payload,
		Renames: target != file.Path,
	}
}

// AlreadyCurrent reports whether the file on disk already carries the plan's
// payload under the plan's name, in which case the transaction is skipped.
func AlreadyCurrent(file library.LocalFile, plan Plan) bool {
	return !plan.Renames && file.Payload == plan.Payload
}

// Apply commits one plan. On any failure the scratch copy is removed, the
// original keeps its bytes and name, and the error carries the rewrite
// marker. A target name already taken by a different file surfaces as a name
// collision instead.
func (rw *Rewriter) Apply(ctx context.Context, plan Plan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	scratch, err := fileutil.WorkingSibling(plan.Source)
	if err != nil {
		return apperr.Wrap(apperr.ErrRewrite, "rewrite", "prepare", plan.Source, err)
	}
	defer func() {
		_ = os.Remove(scratch)
	}()

	if err := fileutil.CopyVerified(plan.Source, scratch); err != nil {
		return apperr.Wrap(apperr.ErrRewrite, "rewrite", "copy", plan.Source, err)
	}
	if err := rw.store.Write(scratch, plan.Payload); err != nil {
		return apperr.Wrap(apperr.ErrRewrite, "rewrite", "write tags", plan.Source, err)
	}
	written, err := rw.store.Read(scratch)
	if err != nil {
		return apperr.Wrap(apperr.ErrRewrite, "rewrite", "verify tags", plan.Source, err)
	}
	if written != plan.Payload {
		return apperr.Wrap(apperr.ErrRewrite, "rewrite", "verify tags", plan.Source,
			fmt.Errorf("re-read payload differs from written payload"))
	}

	if plan.Renames {
		if _, statErr := os.Lstat(plan.Target); statErr == nil {
			return apperr.Wrap(apperr.ErrNameCollision, "rewrite", "claim name", plan.Target,
				fmt.Errorf("target already exists"))
		}
		if err := fileutil.ClaimPath(plan.Target); err != nil {
			return apperr.Wrap(apperr.ErrNameCollision, "rewrite", "claim name", plan.Target, err)
		}
		if err := fileutil.ReplaceFile(scratch, plan.Target); err != nil {
			_ = os.Remove(plan.Target)
			return apperr.Wrap(apperr.ErrRewrite, "rewrite", "rename", plan.Target, err)
		}
		if err := os.Remove(plan.Source); err != nil {
			rw.logger.Warn("stale original left behind",
				logging.String("path", plan.Source), logging.Error(err))
		}
	} else {
		if err := fileutil.ReplaceFile(scratch, plan.Source); err != nil {
			return apperr.Wrap(apperr.ErrRewrite, "rewrite", "rename", plan.Source, err)
		}
	}

	rw.logger.Info("rewrite committed",
		logging.String("source", plan.Source),
		logging.String("target", plan.Target),
		logging.Bool("renamed", plan.Renames))
	return nil
}
