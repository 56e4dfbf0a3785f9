/*
PURPOSE:
  Defines the 'watch' subcommand.
  Publishes, then republishes on every change until interrupted.

ERROR HANDLING:
  - Returns config errors; stops cleanly on SIGINT/SIGTERM.

USAGE:
  cc-publish watch --debounce 1s
*/

package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/daryltucker/cc-publish/internal/publish"
	"github.com/spf13/cobra"
)

var debounceOverride time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Publish, then republish whenever the source tree changes",
	Long: `Publishes once and keeps watching the source directory. Every burst of
changes triggers a full republish once the tree has been quiet for the
debounce interval. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("debounce") {
			cfg.Debounce = debounceOverride
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return publish.Watch(ctx, cfg, nil)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&debounceOverride, "debounce", 0, "Quiet period before republishing (default from config, 500ms)")
}
