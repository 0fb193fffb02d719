// Package config resolves CLI settings from flags, PF_* environment
// variables and an optional ~/.pfconsole.yaml, in that order.
package config

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crucial707/pfconsole/internal/apiclient"
)

const defaultAPIURL = "http://localhost:8080"

// Keys understood in the config file and as PF_<KEY> variables.
const (
	KeyAPIURL  = "api_url"
	KeyOutput  = "output"
	KeyTimeout = "timeout"
)

var v = newViper()

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyAPIURL, defaultAPIURL)
	v.SetDefault(KeyOutput, "table")
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetEnvPrefix("PF")
	v.AutomaticEnv()
	return v
}

// Load reads cfgFile, or .pfconsole.yaml from the home or current directory
// when cfgFile is empty. A missing default file is not an error.
func Load(cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".pfconsole")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return err
	}
	return nil
}

// BindFlags binds the root persistent flags so they take precedence over
// the environment and the config file.
func BindFlags(cmd *cobra.Command) {
	v.BindPFlag(KeyAPIURL, cmd.PersistentFlags().Lookup("api-url"))
	v.BindPFlag(KeyOutput, cmd.PersistentFlags().Lookup("output"))
	v.BindPFlag(KeyTimeout, cmd.PersistentFlags().Lookup("timeout"))
}

// APIURL returns the base URL of the Package Factory backend.
func APIURL() string {
	return v.GetString(KeyAPIURL)
}

// Output returns the output format: table, json or yaml.
func Output() string {
	return v.GetString(KeyOutput)
}

// Client returns an API client for APIURL.
func Client() *apiclient.Client {
	return apiclient.New(APIURL(), &http.Client{Timeout: v.GetDuration(KeyTimeout)})
}

// Context returns the command context, or a background context when the
// command runs outside Execute.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
