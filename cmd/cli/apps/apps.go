package apps

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/crucial707/pfconsole/cmd/cli/config"
	"github.com/crucial707/pfconsole/cmd/cli/output"
	"github.com/crucial707/pfconsole/internal/models"
	"github.com/crucial707/pfconsole/internal/views"
)

var validate = validator.New()

// InitApps registers the apps command tree on rootCmd.
func InitApps(rootCmd *cobra.Command) {
	appsCmd := &cobra.Command{
		Use:   "apps",
		Short: "Browse and assign Intune apps",
	}

	appsCmd.AddCommand(
		listAppsCmd(),
		appStatusCmd(),
		assignAppCmd(),
	)

	rootCmd.AddCommand(appsCmd)
}

func listAppsCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List managed apps",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := config.Client().ListApps(config.Context(cmd))
			if err != nil {
				return fmt.Errorf("failed to load apps: %w", err)
			}
			shown := views.FilterApps(list.Apps, search)
			w := cmd.OutOrStdout()
			return output.Print(w, config.Output(), shown, func() {
				switch {
				case len(list.Apps) == 0:
					fmt.Fprintln(w, "No apps found in Intune")
					return
				case len(shown) == 0:
					fmt.Fprintln(w, "No apps match your search")
					return
				}
				rows := make([][]interface{}, 0, len(shown))
				for _, r := range views.NewAppRows(shown, nil) {
					rows = append(rows, []interface{}{r.ID, r.DisplayName, r.Publisher, r.Size, r.Modified})
				}
				output.RenderTable(w, []string{"ID", "Name", "Publisher", "Size", "Modified"}, rows,
					views.AppCountLabel(len(shown), len(list.Apps)))
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by name, publisher or file name")

	return cmd
}

func appStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [id]",
		Short: "Show app details, assignments and deployment status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := config.Client().GetAppWithStatus(config.Context(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to load app details: %w", err)
			}
			w := cmd.OutOrStdout()
			out := struct {
				App         models.App              `json:"app"`
				Assignments []models.Assignment     `json:"assignments"`
				Status      models.DeploymentStatus `json:"status"`
			}{d.App, d.Assignments, d.Status}
			return output.Print(w, config.Output(), out, func() {
				output.RenderKV(w, [][2]string{
					{"Name", d.App.DisplayName},
					{"Publisher", d.App.Publisher},
					{"File", d.App.FileName},
					{"Size", views.FormatFileSize(d.App.Size)},
					{"Minimum OS", views.MinOSVersion(d.App.Applicability)},
					{"Architecture", views.Architecture(d.App.Applicability)},
				})
				rows := views.StatusRows(d.Status)
				if rows == nil {
					fmt.Fprintln(w, "No deployment data")
				} else {
					var tr [][]interface{}
					for _, r := range rows {
						tr = append(tr, []interface{}{r.Label, r.Count})
					}
					output.RenderTable(w, []string{"Status", "Devices"}, tr, "Total "+strconv.Itoa(d.Status.Total()))
				}
				if len(d.Assignments) > 0 {
					var ar [][]interface{}
					for _, a := range d.Assignments {
						ar = append(ar, []interface{}{a.Intent, views.AssignmentTarget(a)})
					}
					output.RenderTable(w, []string{"Intent", "Target"}, ar, "")
				}
			})
		},
	}
}

func assignAppCmd() *cobra.Command {
	var groupID string
	var intent string

	cmd := &cobra.Command{
		Use:   "assign [id]",
		Short: "Assign an app to a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.AssignRequest{GroupID: groupID, Intent: intent}
			if err := validate.Struct(req); err != nil {
				var verrs validator.ValidationErrors
				if errors.As(err, &verrs) && verrs[0].Field() == "GroupID" {
					return errors.New("group is required (--group)")
				}
				return fmt.Errorf("intent must be one of %v", models.Intents)
			}
			if err := config.Client().AssignApp(config.Context(cmd), args[0], req); err != nil {
				return fmt.Errorf("failed to create assignment: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Assignment created")
			return nil
		},
	}

	cmd.Flags().StringVar(&groupID, "group", "", "target group id")
	cmd.Flags().StringVar(&intent, "intent", models.IntentRequired, "required, available or uninstall")

	return cmd
}
