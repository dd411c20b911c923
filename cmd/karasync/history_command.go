package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"karasync/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent sync sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.History.Path
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

			runs, err := store.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format(time.DateTime),
					run.Root,
					fmt.Sprintf("%d", run.Counts.Total),
					fmt.Sprintf("%d", run.Counts.Updated),
					fmt.Sprintf("%d", run.Counts.Errors),
					run.Duration.Round(time.Millisecond).String(),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				renderTable([]string{"Started", "Root", "Files", "Updated", "Errors", "Took"}, rows, stdoutIsTerminal()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of sessions to list")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit sessions as JSON")
	return cmd
}
