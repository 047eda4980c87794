package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/timekeeper/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and gRPC health server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	app, err := server.NewApp(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	return app.Run(cmd.Context())
}
