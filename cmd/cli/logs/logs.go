package logs

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crucial707/pfconsole/cmd/cli/config"
	"github.com/crucial707/pfconsole/cmd/cli/output"
	"github.com/crucial707/pfconsole/internal/apiclient"
)

// InitLogs registers the logs command tree on rootCmd.
func InitLogs(rootCmd *cobra.Command) {
	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "Read or clear the backend log",
	}

	logsCmd.AddCommand(
		listLogsCmd(),
		clearLogsCmd(),
	)

	rootCmd.AddCommand(logsCmd)
}

func listLogsCmd() *cobra.Command {
	var level string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := config.Client().ListLogs(config.Context(cmd), apiclient.LogFilter{Level: level, Limit: limit})
			if err != nil {
				return fmt.Errorf("failed to load logs: %w", err)
			}
			w := cmd.OutOrStdout()
			return output.Print(w, config.Output(), entries, func() {
				if len(entries) == 0 {
					fmt.Fprintln(w, "No logs available")
					return
				}
				rows := make([][]interface{}, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []interface{}{e.Timestamp, e.Level, e.Component, e.Message})
				}
				output.RenderTable(w, []string{"Timestamp", "Level", "Component", "Message"}, rows, fmt.Sprintf("%d log entries", len(entries)))
			})
		},
	}

	cmd.Flags().StringVar(&level, "level", "All", "level filter: All, Info, Warning, Error or Debug")
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of entries")

	return cmd
}

func clearLogsCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every log entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear logs without --yes")
			}
			if err := config.Client().ClearLogs(config.Context(cmd)); err != nil {
				return fmt.Errorf("failed to clear logs: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logs cleared successfully!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm clearing")

	return cmd
}
