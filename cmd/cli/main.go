package main

import (
	"context"
	"fmt"
	"os"

	"github.com/crucial707/pfconsole/cmd/cli/activity"
	"github.com/crucial707/pfconsole/cmd/cli/apps"
	"github.com/crucial707/pfconsole/cmd/cli/groups"
	"github.com/crucial707/pfconsole/cmd/cli/logs"
	"github.com/crucial707/pfconsole/cmd/cli/packages"
	"github.com/crucial707/pfconsole/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	packages.InitPackages(rootCmd)
	logs.InitLogs(rootCmd)
	activity.InitActivity(rootCmd)
	apps.InitApps(rootCmd)
	groups.InitGroups(rootCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
