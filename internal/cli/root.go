// Package cli implements the cobra commands of the wordgate binary.
//
// The root command owns the viper instance and the --config flag; every
// subcommand reads its settings through config.Load.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build information, injected from the main package.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand builds the root command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "wordgate",
		Short: "HTTP gateway for random words, Wikipedia articles and jokes",
		Long: `wordgate proxies a random-word service, the Wikipedia extracts API and a
random-joke service behind one small JSON API, and keeps a running count of
the words it has served.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a config file (default: ./wordgate.yaml or /etc/wordgate/wordgate.yaml)")

	rootCmd.AddCommand(NewServeCommand(v, &configFile))

	return rootCmd
}

// Execute runs rootCmd and exits with status 1 on failure.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildInfo() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  Commit,
		"date":    Date,
	}
}
