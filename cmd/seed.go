package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rebornlabs/wastelog/internal/factories"
	"github.com/rebornlabs/wastelog/internal/models"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with demo logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetInt64("seed")
		daysBack, _ := cmd.Flags().GetInt("days")

		factory := factories.NewLogFactory(a.catalog, seed)
		userID := a.auth.CurrentUserID()
		for i := 0; i < count; i++ {
			record := factory.CreateLogRecord(daysBack)
			if _, err := a.logs.Upsert(ctx, userID, record); err != nil {
				return fmt.Errorf("seeding log %d: %w", i, err)
			}
		}
		fmt.Printf("seeded %d demo logs for %s\n", count, userID)
		return nil
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the fixed waste-item catalog",
	Run: func(cmd *cobra.Command, args []string) {
		catalog := models.DefaultCatalog()
		for _, category := range models.Categories {
			fmt.Printf("%s:\n", category.DisplayName())
			for _, item := range catalog.Items(category) {
				fmt.Printf("  %-24s %-24s %6.0fg/portion\n", item.ID, item.DisplayName, item.UnitWeightGrams)
			}
		}
	},
}

func init() {
	seedCmd.Flags().Int("count", 20, "Number of demo logs to create")
	seedCmd.Flags().Int64("seed", 42, "Random seed for demo data")
	seedCmd.Flags().Int("days", 30, "Spread demo logs over this many past days")
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(catalogCmd)
}
