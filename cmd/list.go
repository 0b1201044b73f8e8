package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rebornlabs/wastelog/internal/models"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the waste-log history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		watch, _ := cmd.Flags().GetBool("watch")
		userID := a.auth.CurrentUserID()

		if !watch {
			summaries, err := a.logs.ListSummaries(ctx, userID)
			if err != nil {
				return err
			}
			printSummaries(summaries)
			return nil
		}

		// Follow the change feed; every remote write re-delivers the list.
		feed, err := a.logs.WatchSummaries(ctx, userID)
		if err != nil {
			return err
		}
		for summaries := range feed {
			printSummaries(summaries)
			fmt.Println(strings.Repeat("-", 60))
		}
		return nil
	},
}

func printSummaries(summaries []models.LogSummary) {
	if len(summaries) == 0 {
		fmt.Println("no logs yet")
		return
	}
	for _, s := range summaries {
		names := make([]string, len(s.WasteTypes))
		for i, c := range s.WasteTypes {
			names[i] = c.DisplayName()
		}
		fmt.Printf("%s  %-12s %-24s %8.1fg  [%s]\n",
			s.ID,
			time.UnixMilli(s.Date).Format("2006-01-02"),
			s.Title,
			s.TotalWeight,
			strings.Join(names, ", "),
		)
	}
}

func init() {
	listCmd.Flags().Bool("watch", false, "Keep following the change feed")
	rootCmd.AddCommand(listCmd)
}
