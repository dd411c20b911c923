package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"karasync/internal/engine"
	"karasync/internal/history"
	"karasync/internal/logging"
	"karasync/internal/state"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var pathFlag string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Scan the library and apply catalog metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}
			index, err := loadIndex(cfg)
			if err != nil {
				return err
			}
			rules, err := loadPreset(cfg)
			if err != nil {
				return err
			}
			root := resolveRoot(cfg, pathFlag)

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			session := engine.NewSession(root, index, rules,
				engine.WithWorkers(cfg.Matching.Workers),
				engine.WithCutoff(cfg.CutoffTime()),
				engine.WithLogger(logger))

			result, err := session.Run(runCtx)
			if err != nil {
				return err
			}

			if err := state.SaveLastDir(root); err != nil {
				logger.Warn("remember library root", logging.Error(err))
			}
			if cfg.History.Enabled {
				if err := recordHistory(cmd, cfg.History.Path, result); err != nil {
					logger.Warn("record session history", logging.Error(err))
				}
			}

			if jsonOut {
				if err := result.Report.WriteJSON(cmd.OutOrStdout()); err != nil {
					return err
				}
			} else {
				printReport(cmd.OutOrStdout(), result.Report, stdoutIsTerminal())
			}

			if result.Report.HasErrors() {
				return fmt.Errorf("%d file(s) finished with errors", result.Report.Counts.Errors)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pathFlag, "path", "p", "", "Library root to sync (overrides config and remembered root)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the report as JSON")
	return cmd
}

func recordHistory(cmd *cobra.Command, path string, result engine.Result) error {
	if path == "" {
		resolved, err := history.DefaultPath()
		if err != nil {
			return err
		}
		path = resolved
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.RecordRun(cmd.Context(), history.Run{
		RunID:     result.RunID,
		Root:      result.Report.Root,
		StartedAt: result.StartedAt,
		Duration:  result.Duration,
		Counts:    result.Report.Counts,
	})
}
