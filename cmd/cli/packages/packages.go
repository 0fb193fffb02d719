package packages

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crucial707/pfconsole/cmd/cli/config"
	"github.com/crucial707/pfconsole/cmd/cli/output"
	"github.com/crucial707/pfconsole/internal/views"
)

// InitPackages registers the packages command tree on rootCmd.
func InitPackages(rootCmd *cobra.Command) {
	packagesCmd := &cobra.Command{
		Use:   "packages",
		Short: "Manage built packages",
	}

	packagesCmd.AddCommand(
		listPackagesCmd(),
		packageDetailsCmd(),
		deletePackageCmd(),
	)

	rootCmd.AddCommand(packagesCmd)
}

func listPackagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List packages in the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkgs, err := config.Client().ListPackages(config.Context(cmd))
			if err != nil {
				return fmt.Errorf("failed to load packages: %w", err)
			}
			w := cmd.OutOrStdout()
			return output.Print(w, config.Output(), pkgs, func() {
				if len(pkgs) == 0 {
					fmt.Fprintln(w, "No packages created yet.")
					return
				}
				rows := make([][]interface{}, 0, len(pkgs))
				for _, p := range pkgs {
					rows = append(rows, []interface{}{p.Name, p.Created, p.Path})
				}
				output.RenderTable(w, []string{"Name", "Created", "Path"}, rows, fmt.Sprintf("%d packages", len(pkgs)))
			})
		},
	}
}

func packageDetailsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "details [name]",
		Short: "Show deployment details of a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Client().GetPackageDetails(config.Context(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to load package details: %w", err)
			}
			d := views.NewPackageDetails(p)
			w := cmd.OutOrStdout()
			return output.Print(w, config.Output(), p, func() {
				output.RenderKV(w, [][2]string{
					{"Name", d.Name},
					{"Vendor", d.Vendor},
					{"Application", d.AppName},
					{"Version", d.Version},
					{"Architecture", d.Architecture},
					{"Language", d.Language},
					{"Installer", d.InstallerType},
					{"Path", d.Path},
					{"Detection key", d.DetectionKey},
					{"Install command", d.InstallCommand},
					{"Uninstall command", d.UninstallCommand},
				})
			})
		},
	}
}

func deletePackageCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete package %s without --yes", args[0])
			}
			if err := config.Client().DeletePackage(config.Context(cmd), args[0]); err != nil {
				return fmt.Errorf("failed to delete package: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Package deleted successfully!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	return cmd
}
