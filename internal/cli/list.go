/*
PURPOSE:
  Defines the 'list' subcommand.
  Shows which files would be published, and where, without writing anything.

USAGE:
  cc-publish list --source ...
*/

package cli

import (
	"fmt"

	"github.com/daryltucker/cc-publish/internal/publish"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List source files and their destinations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		p, err := publish.New(cfg)
		if err != nil {
			return err
		}

		recs, err := p.Plan()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, r := range recs {
			fmt.Fprintf(out, "%s -> %s\n", r.Source, r.Destination)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
