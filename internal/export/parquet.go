package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/rebornlabs/wastelog/internal/repositories"
)

// Row is the flattened export shape: one row per logged item, denormalised
// with its record's scalars so the file is queryable without joins.
type Row struct {
	LogID       string  `parquet:"name=log_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Date        int64   `parquet:"name=date, type=INT64"`
	Title       string  `parquet:"name=title, type=BYTE_ARRAY, convertedtype=UTF8"`
	CalcType    string  `parquet:"name=calc_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	WasteType   string  `parquet:"name=waste_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	WasteItemID string  `parquet:"name=waste_item_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Quantity    float64 `parquet:"name=quantity, type=DOUBLE"`
	Weight      float64 `parquet:"name=weight, type=DOUBLE"`
	TotalWeight float64 `parquet:"name=total_weight, type=DOUBLE"`
}

// Exporter dumps a user's full log history to a parquet file, optionally
// shipping the result to the blob store afterwards.
type Exporter struct {
	logs     repositories.LogRepository
	uploader repositories.BlobStore // nil means keep the file local
	folder   string
}

func NewExporter(logs repositories.LogRepository, uploader repositories.BlobStore, folder string) *Exporter {
	return &Exporter{logs: logs, uploader: uploader, folder: folder}
}

// Run writes every record of the user to a timestamped parquet file and
// returns its path, or its blob URL when an uploader is configured.
func (e *Exporter) Run(ctx context.Context, userID string) (string, error) {
	summaries, err := e.logs.ListSummaries(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("listing logs for export: %w", err)
	}

	if err := os.MkdirAll(e.folder, os.ModePerm); err != nil {
		return "", fmt.Errorf("creating export folder: %w", err)
	}
	filePath := filepath.Join(e.folder, fmt.Sprintf("waste_logs_%s.parquet", time.Now().Format("20060102_150405")))

	fw, err := local.NewLocalFileWriter(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create local file writer: %w", err)
	}
	pw, err := writer.NewParquetWriter(fw, new(Row), 4)
	if err != nil {
		fw.Close()
		return "", fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	bar := progressbar.Default(int64(len(summaries)), "exporting logs")
	for _, summary := range summaries {
		record, err := e.logs.Get(ctx, userID, summary.ID)
		if err != nil {
			pw.WriteStop()
			fw.Close()
			return "", fmt.Errorf("fetching log %s for export: %w", summary.ID, err)
		}
		for _, item := range record.Items {
			row := Row{
				LogID:       record.ID,
				Date:        record.Date,
				Title:       record.Title,
				CalcType:    string(record.CalcType),
				WasteType:   string(item.WasteType),
				WasteItemID: item.WasteItemID,
				Quantity:    item.Quantity,
				Weight:      item.Weight,
				TotalWeight: record.TotalWeight,
			}
			if err := pw.Write(row); err != nil {
				pw.WriteStop()
				fw.Close()
				return "", fmt.Errorf("failed to write export row: %w", err)
			}
		}
		bar.Add(1)
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return "", fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}

	if e.uploader == nil {
		return filePath, nil
	}
	url, err := e.uploader.Upload(ctx, filePath)
	if err != nil {
		return "", fmt.Errorf("uploading export: %w", err)
	}
	return url, nil
}
