package groups

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crucial707/pfconsole/cmd/cli/config"
	"github.com/crucial707/pfconsole/cmd/cli/output"
	"github.com/crucial707/pfconsole/internal/views"
)

// InitGroups registers the groups command tree on rootCmd.
func InitGroups(rootCmd *cobra.Command) {
	groupsCmd := &cobra.Command{
		Use:   "groups",
		Short: "Browse directory groups",
	}

	groupsCmd.AddCommand(
		listGroupsCmd(),
		membersCmd(),
	)

	rootCmd.AddCommand(groupsCmd)
}

func listGroupsCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := config.Client().ListGroups(config.Context(cmd))
			if err != nil {
				return fmt.Errorf("failed to load groups: %w", err)
			}
			shown := views.FilterGroups(groups, search)
			w := cmd.OutOrStdout()
			return output.Print(w, config.Output(), shown, func() {
				if len(shown) == 0 {
					fmt.Fprintln(w, "No groups found")
					return
				}
				rows := make([][]interface{}, 0, len(shown))
				for _, g := range shown {
					rows = append(rows, []interface{}{g.ID, g.DisplayName, g.Description})
				}
				output.RenderTable(w, []string{"ID", "Name", "Description"}, rows, fmt.Sprintf("%d groups", len(groups)))
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by display name")

	return cmd
}

func membersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members [group-id]",
		Short: "List the members of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := config.Client().ListGroupMembers(config.Context(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to load members: %w", err)
			}
			w := cmd.OutOrStdout()
			return output.Print(w, config.Output(), members, func() {
				if len(members) == 0 {
					fmt.Fprintln(w, "No members yet")
					return
				}
				rows := make([][]interface{}, 0, len(members))
				for _, m := range members {
					rows = append(rows, []interface{}{m.ID, m.DisplayName, m.UserPrincipalName})
				}
				output.RenderTable(w, []string{"ID", "Name", "User principal name"}, rows, "")
			})
		},
	}
}
