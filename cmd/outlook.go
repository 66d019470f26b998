package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agmlego/novatime/internal/msgraph"
)

var outlookPushDryRun bool

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push completed shifts to the Outlook calendar",
	Args:  cobra.NoArgs,
	RunE:  runOutlookPush,
}

func init() {
	outlookPushCmd.Flags().BoolVar(&outlookPushDryRun, "dry-run", false, "Print planned operations without writing")
	outlookCmd.AddCommand(outlookPushCmd)
}

func runOutlookPush(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, client, period := portalSession(ctx)
	ts, _ := buildTimesheet(ctx, cfg, client, period)

	tok, oauthCfg, err := msgraph.Authenticate(ctx, cfg.Outlook.TenantID, cfg.Outlook.ClientID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Authentication failed: %v\n", err)
		os.Exit(1)
	}
	graph := msgraph.NewClient(ctx, tok, oauthCfg)

	dryTag := ""
	if outlookPushDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Printf("Pushing shifts for pay period %s%s...\n", period, dryTag)

	result, err := graph.PushEntries(ctx, ts, msgraph.PushOptions{
		Subject:  cfg.Outlook.Calendar,
		Timezone: cfg.Portal.Timezone,
		DryRun:   outlookPushDryRun,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Push error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Summary:")
	fmt.Printf("  %d created\n", result.Created)
	fmt.Printf("  %d skipped\n", result.Skipped)
	if len(result.Errors) > 0 {
		fmt.Printf("  %d errors\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "  %v\n", e)
		}
		os.Exit(2)
	}
	return nil
}
