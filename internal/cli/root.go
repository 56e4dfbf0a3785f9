/*
PURPOSE:
  Defines the root Cobra command for the cc-publish CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - A bare invocation publishes with the default paths.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Every subcommand resolves config the same way (loadConfig).

ARCHITECTURE INTEGRATION:
  - Called by: cmd/cc-publish/main.go
  - Calls: Child commands (publish, list, watch)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.

RELATED FILES:
  - cmd/cc-publish/main.go
  - internal/config/config.go
*/

package cli

import (
	"github.com/daryltucker/cc-publish/internal/config"
	"github.com/daryltucker/cc-publish/internal/output"
	"github.com/spf13/cobra"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string

	sourceOverride   string
	targetOverride   string
	manifestOverride string
	verbose          bool

	rootCmd = &cobra.Command{
		Use:   "cc-publish",
		Short: "Publish a coverage report tree with its stylesheet inlined",
		Long: `Copies every HTML file of a generated coverage report into a target directory,
mirroring the relative layout, and replaces the coverage.css @import directive
with the contents of the stylesheet. Running without a subcommand is the same
as 'cc-publish publish'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
		Args: cobra.NoArgs,
		RunE: runPublish,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig applies flag overrides on top of file and environment config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if sourceOverride != "" {
		cfg.SourceDir = sourceOverride
	}
	if targetOverride != "" {
		cfg.TargetDir = targetOverride
	}
	if manifestOverride != "" {
		cfg.Manifest = manifestOverride
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./cc-publish.yaml)")
	rootCmd.PersistentFlags().StringVarP(&sourceOverride, "source", "s", "", "Coverage report source directory (default /tmp/cc)")
	rootCmd.PersistentFlags().StringVarP(&targetOverride, "target", "t", "", "Destination directory (default site/cc)")
	rootCmd.PersistentFlags().StringVar(&manifestOverride, "manifest", "", "Write a manifest of published files (.csv for CSV, otherwise JSON Lines)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every published file")
}
