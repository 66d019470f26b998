package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agmlego/novatime/internal/config"
	"github.com/agmlego/novatime/internal/novatime"
	"github.com/agmlego/novatime/internal/nvtime"
	"github.com/agmlego/novatime/internal/raw"
	"github.com/agmlego/novatime/internal/timesheet"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "novatime",
	Short: "NOVATime employee portal client",
	Long: `novatime talks to a NOVATime time-and-attendance portal as an employee.
It fetches and archives timesheets, reports hours worked against a weekly
target, predicts today's clock-out time, and pushes shifts to Outlook.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(outlookCmd)
}

// newLogger builds the stderr logger shared by all commands.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// portalSession loads the config and logs in to the portal. It returns
// the config, an authenticated client, and the current pay period.
func portalSession(ctx context.Context) (config.Config, *novatime.Client, timesheet.DatePeriod) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := cfg.RequirePortal(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := nvtime.SetZone(cfg.Portal.Timezone); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	client, err := novatime.New(novatime.Config{
		Host:     cfg.Portal.Host,
		Page:     cfg.Portal.Page,
		CID:      cfg.Portal.CID,
		Username: cfg.Portal.Username,
		Password: cfg.Portal.Password,
	}, novatime.WithLogger(newLogger()))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	period, err := client.Login(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
		os.Exit(1)
	}
	return cfg, client, period
}

// weekHours converts the configured weekly target to a duration.
func weekHours(cfg config.Config) time.Duration {
	return time.Duration(cfg.Hours.WeekHours) * time.Hour
}

// buildTimesheet fetches and parses the timesheet for the period. The raw
// records come back alongside the parsed result so callers can archive them.
func buildTimesheet(ctx context.Context, cfg config.Config, client *novatime.Client, period timesheet.DatePeriod) (*timesheet.Timesheet, []raw.Record) {
	records, _, err := client.GetTimesheet(ctx, period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetching timesheet: %v\n", err)
		os.Exit(1)
	}

	ts := timesheet.New(period, weekHours(cfg), timesheet.WithLogger(newLogger()))
	if err := ts.Parse(records); err != nil {
		fmt.Fprintf(os.Stderr, "parsing timesheet: %v\n", err)
		os.Exit(1)
	}
	return ts, records
}
