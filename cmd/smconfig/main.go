package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/smconfig/cmd/smconfig/commands"
	"github.com/systmms/smconfig/internal/config"
	dserrors "github.com/systmms/smconfig/internal/errors"
	"github.com/systmms/smconfig/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", dserrors.SimplifyError(err))
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile string
		noColor    bool
		debug      bool
	)

	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "smconfig",
		Short: "Resolve configuration values from AWS Secrets Manager",
		Long: `smconfig resolves a secret path into configuration entries, the same way
a host application does through the provider library.

Settings are read from --config (YAML or JSON) and from SMCONFIG_* environment
variables, for example SMCONFIG_AWS_REGION or SMCONFIG_SECRET_PREFIX.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg.Path = configFile
			cfg.Logger = logging.New(debug, noColor)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Settings file path (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		commands.NewGetCommand(cfg),
		commands.NewOptionsCommand(cfg),
	)

	return rootCmd.Execute()
}
