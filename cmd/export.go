package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rebornlabs/wastelog/internal/export"
	"github.com/rebornlabs/wastelog/internal/repositories"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the log history to a parquet file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		toS3, _ := cmd.Flags().GetBool("s3")
		var uploader repositories.BlobStore
		if toS3 || a.cfg.ExportToS3 {
			uploader, err = a.blobStore(ctx)
			if err != nil {
				return err
			}
		}

		exporter := export.NewExporter(a.logs, uploader, a.cfg.ExportFolder)
		dest, err := exporter.Run(ctx, a.auth.CurrentUserID())
		if err != nil {
			return err
		}
		fmt.Println("exported to", dest)
		return nil
	},
}

func init() {
	exportCmd.Flags().Bool("s3", false, "Upload the export to the configured S3 bucket")
	rootCmd.AddCommand(exportCmd)
}
