package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rebornlabs/wastelog/internal/models"
)

const logsChannel = "waste_logs_changed"

// LogRepository persists LogRecords in Postgres. Scalars live in typed
// columns; line items are stored as the record's JSON wire shape so unknown
// fields written by newer clients survive a round trip.
type LogRepository struct {
	pool *pgxpool.Pool
}

func NewLogRepository(pool *pgxpool.Pool) *LogRepository {
	return &LogRepository{pool: pool}
}

// InitSchema creates the waste_logs table when missing.
func (r *LogRepository) InitSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS waste_logs (
            id TEXT NOT NULL,
            user_id TEXT NOT NULL,
            date BIGINT NOT NULL,
            title TEXT NOT NULL,
            waste_type TEXT NOT NULL,
            waste_types JSONB NOT NULL,
            calc_type TEXT NOT NULL,
            total_weight DOUBLE PRECISION NOT NULL,
            remarks TEXT,
            image_url TEXT,
            items JSONB NOT NULL,
            PRIMARY KEY (user_id, id)
        )
    `)
	if err != nil {
		return fmt.Errorf("creating waste_logs table: %w", err)
	}
	return nil
}

func (r *LogRepository) Get(ctx context.Context, userID, id string) (*models.LogRecord, error) {
	query := `
        SELECT id, date, title, waste_type, waste_types, calc_type,
               total_weight, remarks, image_url, items
        FROM waste_logs
        WHERE user_id = $1 AND id = $2
    `
	record := &models.LogRecord{}
	var remarks, imageURL *string
	var wasteTypes, items []byte
	err := r.pool.QueryRow(ctx, query, userID, id).Scan(
		&record.ID,
		&record.Date,
		&record.Title,
		&record.WasteType,
		&wasteTypes,
		&record.CalcType,
		&record.TotalWeight,
		&remarks,
		&imageURL,
		&items,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching log %s: %w", id, err)
	}
	if remarks != nil {
		record.Remarks = *remarks
	}
	if imageURL != nil {
		record.ImageURL = *imageURL
	}
	if err := json.Unmarshal(wasteTypes, &record.WasteTypes); err != nil {
		return nil, fmt.Errorf("decoding waste_types of log %s: %w", id, err)
	}
	if err := json.Unmarshal(items, &record.Items); err != nil {
		return nil, fmt.Errorf("decoding items of log %s: %w", id, err)
	}
	return record, nil
}

func (r *LogRepository) Upsert(ctx context.Context, userID string, record *models.LogRecord) (string, error) {
	wasteTypes, err := json.Marshal(record.WasteTypes)
	if err != nil {
		return "", fmt.Errorf("encoding waste_types: %w", err)
	}
	items, err := json.Marshal(record.Items)
	if err != nil {
		return "", fmt.Errorf("encoding items: %w", err)
	}

	query := `
        INSERT INTO waste_logs (
            id, user_id, date, title, waste_type, waste_types,
            calc_type, total_weight, remarks, image_url, items
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
        )
        ON CONFLICT (user_id, id) DO UPDATE SET
            date = EXCLUDED.date,
            title = EXCLUDED.title,
            waste_type = EXCLUDED.waste_type,
            waste_types = EXCLUDED.waste_types,
            calc_type = EXCLUDED.calc_type,
            total_weight = EXCLUDED.total_weight,
            remarks = EXCLUDED.remarks,
            image_url = EXCLUDED.image_url,
            items = EXCLUDED.items
    `
	_, err = r.pool.Exec(ctx, query,
		record.ID,
		userID,
		record.Date,
		record.Title,
		record.WasteType,
		wasteTypes,
		record.CalcType,
		record.TotalWeight,
		nullable(record.Remarks),
		nullable(record.ImageURL),
		items,
	)
	if err != nil {
		return "", fmt.Errorf("upserting log %s: %w", record.ID, err)
	}
	r.notify(ctx, userID)
	return record.ID, nil
}

func (r *LogRepository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM waste_logs WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("deleting log %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", models.ErrNotFound, id)
	}
	r.notify(ctx, userID)
	return nil
}

func (r *LogRepository) ListSummaries(ctx context.Context, userID string) ([]models.LogSummary, error) {
	query := `
        SELECT id, date, title, waste_types, total_weight, image_url
        FROM waste_logs
        WHERE user_id = $1
        ORDER BY date DESC
    `
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing logs: %w", err)
	}
	defer rows.Close()

	var summaries []models.LogSummary
	for rows.Next() {
		var s models.LogSummary
		var wasteTypes []byte
		var imageURL *string
		if err := rows.Scan(&s.ID, &s.Date, &s.Title, &wasteTypes, &s.TotalWeight, &imageURL); err != nil {
			return nil, fmt.Errorf("scanning log summary: %w", err)
		}
		if err := json.Unmarshal(wasteTypes, &s.WasteTypes); err != nil {
			return nil, fmt.Errorf("decoding waste_types of log %s: %w", s.ID, err)
		}
		if imageURL != nil {
			s.ImageURL = *imageURL
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// WatchSummaries re-delivers the summary list on every change notification
// for the user. The channel closes when ctx is cancelled. Deliveries are not
// ordered relative to local writes; callers must not assume their own write
// is visible in the next delivery.
func (r *LogRepository) WatchSummaries(ctx context.Context, userID string) (<-chan []models.LogSummary, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring listen connection: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+logsChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listening on %s: %w", logsChannel, err)
	}

	initial, err := r.ListSummaries(ctx, userID)
	if err != nil {
		conn.Release()
		return nil, fmt.Errorf("loading initial summaries: %w", err)
	}
	out := make(chan []models.LogSummary, 1)
	out <- initial

	go func() {
		defer close(out)
		defer conn.Release()
		for {
			notification, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				return
			}
			if notification.Payload != userID {
				continue
			}
			summaries, err := r.ListSummaries(ctx, userID)
			if err != nil {
				continue
			}
			select {
			case out <- summaries:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// notify is best effort; a missed notification only delays the watch feed.
func (r *LogRepository) notify(ctx context.Context, userID string) {
	_, _ = r.pool.Exec(ctx, "SELECT pg_notify($1, $2)", logsChannel, userID)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
