package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agmlego/novatime/internal/archive"
	"github.com/agmlego/novatime/internal/raw"
	"github.com/agmlego/novatime/internal/timesheet"
)

var fetchLastPay string

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the timesheet and archive the raw records",
	Args:  cobra.NoArgs,
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchLastPay, "last-pay", "",
		"Date of the last paycheck (YYYY-MM-DD); fetches that pay period instead of the current one")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	_, client, period := portalSession(ctx)

	if fetchLastPay != "" {
		d, err := time.Parse("2006-01-02", fetchLastPay)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --last-pay value %q: %v\n", fetchLastPay, err)
			os.Exit(1)
		}
		period = timesheet.CurrentPayPeriod(d)
	}

	records, _, err := client.GetTimesheet(ctx, period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetching timesheet: %v\n", err)
		os.Exit(1)
	}

	if err := archiveRecords(period, records); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Archived %d records for pay period %s\n", len(records), period)
	return nil
}

// archiveRecords saves raw timesheet records under the pay-period key.
func archiveRecords(period timesheet.DatePeriod, records []raw.Record) error {
	base, err := archive.BaseDir()
	if err != nil {
		return err
	}
	payload := map[string]any{
		"period":  period.String(),
		"fetched": time.Now().UTC().Format(time.RFC3339),
		"records": records,
	}
	return archive.Save(base, period, payload)
}
