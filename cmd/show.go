package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rebornlabs/wastelog/internal/models"
	"github.com/rebornlabs/wastelog/internal/session"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one log with its per-category selections",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		record, err := a.logs.Get(ctx, a.auth.CurrentUserID(), args[0])
		if err != nil {
			return err
		}

		// Run the record through the reconciler so what prints is exactly
		// what an edit session would start from.
		store, scalars := session.ToSelectionStore(record, a.catalog)

		fmt.Printf("%s  %s\n", record.ID, scalars.Title)
		fmt.Printf("date:    %s\n", time.UnixMilli(scalars.Date).Format(time.RFC1123))
		fmt.Printf("mode:    %s\n", scalars.Mode)
		fmt.Printf("total:   %.1fg\n", session.TotalWeight(store, scalars.Mode))
		if scalars.Remarks != "" {
			fmt.Printf("remarks: %s\n", scalars.Remarks)
		}
		if record.ImageURL != "" {
			fmt.Printf("photo:   %s\n", record.ImageURL)
		}
		for _, category := range models.Categories {
			var lines []string
			for _, sel := range store.ActiveCategory(category) {
				if sel.Quantity > 0 {
					lines = append(lines, fmt.Sprintf("  %-24s %g", sel.Item.DisplayName, sel.Quantity))
				}
			}
			if len(lines) > 0 {
				fmt.Printf("%s:\n", category.DisplayName())
				for _, line := range lines {
					fmt.Println(line)
				}
			}
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a log record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.logs.Delete(ctx, a.auth.CurrentUserID(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted log %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
}
