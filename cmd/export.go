package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agmlego/novatime/internal/report"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current pay period to an XLSX workbook",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "timesheet.xlsx", "Output file path")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, client, period := portalSession(ctx)
	ts, _ := buildTimesheet(ctx, cfg, client, period)

	if err := report.ExportXLSX(exportOut, ts); err != nil {
		fmt.Fprintf(os.Stderr, "writing %s: %v\n", exportOut, err)
		os.Exit(2)
	}

	fmt.Printf("Wrote %s (pay period %s)\n", exportOut, period)
	return nil
}
