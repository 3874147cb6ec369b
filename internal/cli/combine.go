package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xiaodongyu/spanish-helper/internal/app"
)

// newCombineCmd creates the combine command, which merges all per-file
// transcripts into one combined document.
func newCombineCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "combine",
		Short: "Merge per-file transcripts into a single document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log, err := opts.buildLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			application := app.NewApplication(cfg, log)
			outPath, err := application.CombineTranscripts()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), outPath)
			return nil
		},
	}
}
