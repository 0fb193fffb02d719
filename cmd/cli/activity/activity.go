package activity

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crucial707/pfconsole/cmd/cli/config"
	"github.com/crucial707/pfconsole/cmd/cli/output"
	"github.com/crucial707/pfconsole/internal/views"
)

// InitActivity registers the activity command on rootCmd.
func InitActivity(rootCmd *cobra.Command) {
	rootCmd.AddCommand(activityCmd())
}

func activityCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the activity history",
		RunE: func(cmd *cobra.Command, args []string) error {
			acts, err := config.Client().ListActivities(config.Context(cmd), limit)
			if err != nil {
				return fmt.Errorf("failed to load activity history: %w", err)
			}
			w := cmd.OutOrStdout()
			return output.Print(w, config.Output(), acts, func() {
				if len(acts) == 0 {
					fmt.Fprintln(w, "No activities yet")
					return
				}
				var rows [][]interface{}
				for _, g := range views.GroupActivities(acts, nil) {
					for _, e := range g.Entries {
						msg := strings.TrimSpace(e.Message.Label + " " + e.Message.Text)
						status := "ok"
						if e.Failed {
							status = "failed: " + e.Error
						}
						rows = append(rows, []interface{}{g.Date, e.Time, e.Icon + " " + msg, status})
					}
				}
				output.RenderTable(w, []string{"Date", "Time", "Activity", "Status"}, rows, fmt.Sprintf("%d activities", len(acts)))
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of activities")

	return cmd
}
