package root

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/crucial707/pfconsole/cmd/cli/config"
)

var cfgFile string

// RootCmd is the pfconsole command; subcommands are attached by main.
var RootCmd = New()

// New returns a fresh root command with the persistent flags bound to the
// CLI configuration.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pfconsole",
		Short:         "Package Factory console CLI",
		Long:          "Command line interface for the Package Factory API: packages, logs, activity, Intune apps and groups.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.Load(cfgFile)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pfconsole.yaml or ./.pfconsole.yaml)")
	cmd.PersistentFlags().String("api-url", "http://localhost:8080", "Package Factory API base URL (env PF_API_URL)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json or yaml (env PF_OUTPUT)")
	cmd.PersistentFlags().Duration("timeout", 30*time.Second, "HTTP timeout for API calls")
	config.BindFlags(cmd)

	return cmd
}

// GetRoot returns RootCmd.
func GetRoot() *cobra.Command {
	return RootCmd
}
