package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agmlego/novatime/internal/report"
)

var reportNoArchive bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show hours worked, remaining hours, and the predicted clock-out",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportNoArchive, "no-archive", false, "Skip archiving the fetched records")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, client, period := portalSession(ctx)
	ts, records := buildTimesheet(ctx, cfg, client, period)

	if !reportNoArchive {
		if err := archiveRecords(period, records); err != nil {
			fmt.Fprintf(os.Stderr, "warning: archiving failed: %v\n", err)
		}
	}

	report.Write(os.Stdout, ts)
	return nil
}
