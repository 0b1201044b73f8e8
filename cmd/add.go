package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rebornlabs/wastelog/internal/models"
	"github.com/rebornlabs/wastelog/internal/session"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new waste log (or edit one with --id)",
	Example: `  wastelog add --title "Dinner scraps" --mode portion --item avoidable:rice=2 --item unavoidable:egg_shells=3
  wastelog add --id cjld2cjx --title "Corrected" --mode grams --item avoidable:rice=300`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		editID, _ := cmd.Flags().GetString("id")
		title, _ := cmd.Flags().GetString("title")
		modeFlag, _ := cmd.Flags().GetString("mode")
		categoryFlag, _ := cmd.Flags().GetString("category")
		remarks, _ := cmd.Flags().GetString("remarks")
		photo, _ := cmd.Flags().GetString("photo")
		dateFlag, _ := cmd.Flags().GetString("date")
		itemFlags, _ := cmd.Flags().GetStringArray("item")

		controller := session.NewController(a.catalog, a.logs, nil, a.events, a.logger, a.auth.CurrentUserID())
		if photo != "" {
			blobs, err := a.blobStore(ctx)
			if err != nil {
				return err
			}
			controller = session.NewController(a.catalog, a.logs, blobs, a.events, a.logger, a.auth.CurrentUserID())
		}

		if editID != "" {
			if err := controller.StartEdit(ctx, editID); err != nil {
				return err
			}
		} else {
			controller.StartNew()
		}

		scalars := controller.Scalars()
		if title != "" {
			scalars.Title = title
		}
		if modeFlag != "" {
			mode, err := models.ParseUnitMode(modeFlag)
			if err != nil {
				return err
			}
			scalars.Mode = mode
		}
		if categoryFlag != "" {
			category, err := models.ParseCategory(categoryFlag)
			if err != nil {
				return err
			}
			scalars.Category = category
		}
		if remarks != "" {
			scalars.Remarks = remarks
		}
		if dateFlag != "" {
			t, err := time.Parse(time.RFC3339, dateFlag)
			if err != nil {
				return fmt.Errorf("invalid --date, want RFC3339: %w", err)
			}
			scalars.Date = t.UnixMilli()
		}
		if err := controller.SetScalars(scalars); err != nil {
			return err
		}

		for _, spec := range itemFlags {
			category, itemID, qty, err := parseItemSpec(spec)
			if err != nil {
				return err
			}
			if err := controller.SetQuantity(category, itemID, qty); err != nil {
				return err
			}
		}

		if photo != "" {
			if err := controller.StageAsset(photo); err != nil {
				return err
			}
		}

		id, err := controller.Commit(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("saved log %s (total %.1fg)\n", id, controller.TotalWeight())
		return nil
	},
}

// parseItemSpec reads "category:item_id=qty", e.g. "avoidable:rice=2".
func parseItemSpec(spec string) (models.Category, string, float64, error) {
	colon := strings.Index(spec, ":")
	eq := strings.LastIndex(spec, "=")
	if colon < 0 || eq < colon {
		return "", "", 0, fmt.Errorf("invalid --item %q, want category:item_id=qty", spec)
	}
	category, err := models.ParseCategory(spec[:colon])
	if err != nil {
		return "", "", 0, err
	}
	qty, err := strconv.ParseFloat(spec[eq+1:], 64)
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid quantity in --item %q: %w", spec, err)
	}
	return category, spec[colon+1 : eq], qty, nil
}

func init() {
	addCmd.Flags().String("id", "", "Existing log id to edit instead of creating")
	addCmd.Flags().String("title", "", "Log title")
	addCmd.Flags().String("mode", "", "Unit mode: grams or portion")
	addCmd.Flags().String("category", "", "Category tab last used, fallback primary label")
	addCmd.Flags().String("remarks", "", "Free-form remarks")
	addCmd.Flags().String("photo", "", "Local photo to upload with the log")
	addCmd.Flags().String("date", "", "Log date, RFC3339 (default now)")
	addCmd.Flags().StringArray("item", nil, "Selection as category:item_id=qty, repeatable")
	rootCmd.AddCommand(addCmd)
}
