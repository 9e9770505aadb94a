package cli

import (
	"context"
	"fmt"
	"os"

	"task-tracker/internal/core/domain/entities"
	"task-tracker/internal/infrastructure/app"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var format string
	var outputFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a report of all tasks",
		Long: `Write a report of all tasks.

Formats:
   xlsx   spreadsheet with one row per task (reporte_tareas.xlsx)
   txt    plain-text listing (reporte_tareas.txt); "pdf" is accepted as an alias

The report is written to its fixed file name in the current directory unless
-o is given. Use -o - to write to stdout.`,
		Example: `  tracker export --format xlsx
  tracker export --format txt -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportFormat, err := entities.ParseReportFormat(format)
			if err != nil {
				return fmt.Errorf("%w: %q", err, format)
			}

			return withCore(cmd, func(ctx context.Context, core *app.Core) error {
				report, err := core.Tracker.Export(ctx, reportFormat)
				if err != nil {
					return err
				}

				if outputFile == "-" {
					_, err := cmd.OutOrStdout().Write(report.Data)
					return err
				}
				path := outputFile
				if path == "" {
					path = report.Name
				}
				if err := os.WriteFile(path, report.Data, 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(report.Data))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(entities.ReportSpreadsheet), "report format: xlsx or txt")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output path, - for stdout")
	return cmd
}
