// Package cli contains the spendwise commands.
package cli

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spendwise/backend/internal/config"
	"github.com/spf13/cobra"
)

// Execute runs the root command and exits with a non-zero code on errors.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCommand returns the command tree. Without a subcommand, the
// server is started.
func NewRootCommand() *cobra.Command {
	var (
		file string
		cfg  = new(config.Config)
	)

	serve := newServeCommand(cfg)

	root := &cobra.Command{
		Use:   "spendwise",
		Short: "Turns bank notification messages into a categorized ledger",
		Long: `spendwise parses bank and UPI notification messages into transactions,
categorizes them, checks them against monthly budgets and serves the
resulting ledger over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.Load(file)
			if err != nil {
				return err
			}
			*cfg = *c

			setupLogging(cfg)
			return nil
		},
		RunE: serve.RunE,
	}

	root.PersistentFlags().StringVarP(&file, "config", "c", "", "config file (default is ./config.yaml or $HOME/.spendwise/config.yaml)")

	root.AddCommand(serve, newParseCommand(cfg), newVersionCommand())
	return root
}
