/*
PURPOSE:
  Defines the 'publish' subcommand (also the root command's action).

IMPLEMENTATION RULES:
  - Logic: Load Config -> Override -> publish.New -> Run.

USAGE:
  cc-publish publish --source /tmp/cc --target site/cc
*/

package cli

import (
	"github.com/daryltucker/cc-publish/internal/publish"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Copy the report tree and inline the stylesheet",
	Example: `  # Publish /tmp/cc into site/cc
  cc-publish

  # Publish somewhere else and keep a CSV manifest
  cc-publish publish -s build/coverage -t public/coverage --manifest publish.csv`,
	Args: cobra.NoArgs,
	RunE: runPublish,
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := publish.New(cfg)
	if err != nil {
		return err
	}

	_, err = p.Run()
	return err
}

func init() {
	rootCmd.AddCommand(publishCmd)
}
