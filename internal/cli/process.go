package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xiaodongyu/spanish-helper/internal/app"
)

// newProcessCmd creates the process command. Without arguments it processes
// every audio file in the configured audio directory; with arguments it
// processes the named audio or transcript files.
func newProcessCmd(opts *rootOptions) *cobra.Command {
	var textOnly bool

	cmd := &cobra.Command{
		Use:   "process [file...]",
		Short: "Transcribe audio files and write attributed transcripts",
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
			ctx := cmd.Context()

			if len(args) == 0 {
				return application.Run(ctx)
			}

			var failures int
			for _, path := range args {
				var err error
				if textOnly || strings.HasSuffix(path, ".txt") {
					err = processText(cmd, application, path)
				} else {
					err = application.ProcessFile(ctx, path)
				}
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failures++
				}
			}
			if failures > 0 {
				return fmt.Errorf("%d of %d files failed", failures, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&textOnly, "text", false, "treat arguments as transcript text files, not audio")
	return cmd
}

// processText runs the text pipeline on an existing transcript file and
// prints the attributed document to stdout.
func processText(cmd *cobra.Command, application *app.Application, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	out, err := application.ProcessTranscript(cmd.Context(), app.Input{Text: string(data)})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out.Document)
	return nil
}
