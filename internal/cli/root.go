// Package cli defines the command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiaodongyu/spanish-helper/internal/config"
	"github.com/xiaodongyu/spanish-helper/internal/logger"
)

// rootOptions carries flags shared by all subcommands.
type rootOptions struct {
	configFile string
	verbose    bool
}

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "spanish-helper",
		Short:   "Transcribe and structure Spanish learning audio",
		Long:    "Transcribes Spanish radio episodes, detects episode boundaries, attributes speakers, and renders readable transcripts.",
		Version: version,
		// Errors are printed once in main.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "path to config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newProcessCmd(opts))
	cmd.AddCommand(newCombineCmd(opts))

	return cmd
}

// loadConfig builds the configuration from the --config file when given,
// otherwise from environment variables.
func (o *rootOptions) loadConfig() (*config.Configuration, error) {
	if o.configFile != "" {
		cfg, err := config.NewConfigurationFromFile(o.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		return cfg, nil
	}
	return config.NewConfigurationFromEnv(), nil
}

// buildLogger builds the process logger, development-style when --verbose.
func (o *rootOptions) buildLogger() (*zap.Logger, error) {
	if o.verbose {
		return logger.NewDevelopmentLogger()
	}
	return logger.NewProductionLogger()
}
