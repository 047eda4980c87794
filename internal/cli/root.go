// Package cli implements the timekeeper command line: serve, migrate and
// export.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/timekeeper/internal/logging"
	"github.com/dmitrijs2005/timekeeper/internal/server/config"
)

// NewRootCmd builds the timekeeper command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "timekeeper",
		Short: "Freelance time tracking server",
		Long: `timekeeper tracks clients, projects, time entries and invoices for
freelance work, with a single running timer and JSON exports.`,
		SilenceUsage: true,
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newExportCmd())

	return root
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// setup loads configuration and builds the logger for cmd.
func setup(cmd *cobra.Command) (*config.Config, logging.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat), nil
}
