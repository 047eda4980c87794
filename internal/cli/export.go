package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/timekeeper/internal/filex"
	"github.com/dmitrijs2005/timekeeper/internal/server"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON snapshot of all data",
		Long: `Export writes every client, project, time entry and invoice as one JSON
document to stdout, or to the file given with --output.`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}
	cmd.Flags().StringP("output", "o", "", "write the snapshot to this file instead of stdout")
	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")

	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	db, err := server.OpenDatabase(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	snap, err := server.NewServices(db, cfg, logger).Export.Snapshot(cmd.Context())
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	data = append(data, '\n')

	if output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := filex.WriteFileAtomic(output, data, 0o600); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", output)
	return nil
}
