package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories [group]",
	Short: "List category groups, or the options of one group",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCategories,
}

func runCategories(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	_, client, _ := portalSession(ctx)

	if len(args) == 0 {
		groups, err := client.Groups(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetching group list: %v\n", err)
			os.Exit(1)
		}

		names := make([]string, 0, len(groups))
		for name := range groups {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%-30s (group %d)\n", name, groups[name])
		}
		return nil
	}

	group, err := client.GroupOptions(ctx, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetching %q options: %v\n", args[0], err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d options\n", group.Name, group.Len())
	for _, opt := range group.Options() {
		fmt.Printf("  %s\n", opt)
	}
	return nil
}
