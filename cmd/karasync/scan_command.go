package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"karasync/internal/engine"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var pathFlag string
	var jsonOut bool
	var verify bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Preview what sync would change without writing anything",
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
				engine.WithDryRun(true),
				engine.WithVerify(verify),
				engine.WithLogger(logger))

			result, err := session.Run(runCtx)
			if err != nil {
				return err
			}

			if jsonOut {
				return result.Report.WriteJSON(cmd.OutOrStdout())
			}
			printReport(cmd.OutOrStdout(), result.Report, stdoutIsTerminal())
			return nil
		},
	}

	cmd.Flags().StringVarP(&pathFlag, "path", "p", "", "Library root to scan (overrides config and remembered root)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the report as JSON")
	cmd.Flags().BoolVar(&verify, "verify", false, "Hash file contents and flag drift from catalog fingerprints")
	return cmd
}
