package postgres

import (
	"context"
	"fmt"

	"github.com/OpinaApp/opina-backend/internal/store"
	"github.com/OpinaApp/opina-backend/types"
)

// Ensure RecordClient implements store.RecordClient
var _ store.RecordClient = (*RecordClient)(nil)

// RecordClient is the pgx-backed implementation of the narrow record
// client. Each method issues exactly one statement; the archive and insert
// of a submission are deliberately separate calls, never one transaction,
// so the behaviour is identical whether the store is reached directly or
// through the hosted REST API.
type RecordClient struct {
	db DB
}

// NewRecordClient creates a RecordClient backed by the given database handle.
func NewRecordClient(db DB) *RecordClient {
	return &RecordClient{db: db}
}

func (c *RecordClient) QueryByStatus(ctx context.Context, category types.Category, status types.ItemStatus) ([]types.FeedbackItem, error) {
	query := fmt.Sprintf(`
        SELECT id, title, description, status, created_at
        FROM %s
        WHERE status = $1
        ORDER BY id`, category.Table())

	rows, err := c.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("query %s by status: %w", category.Table(), err)
	}
	defer rows.Close()

	var items []types.FeedbackItem
	for rows.Next() {
		var item types.FeedbackItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Status, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", category.Table(), err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s rows: %w", category.Table(), err)
	}
	return items, nil
}

func (c *RecordClient) BulkUpdateStatus(ctx context.Context, category types.Category, ids []int64, status types.ItemStatus) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE %s SET status = $1 WHERE id = ANY($2)`, category.Table())
	if _, err := c.db.Exec(ctx, query, status, ids); err != nil {
		return fmt.Errorf("bulk update %s: %w", category.Table(), err)
	}
	return nil
}

func (c *RecordClient) InsertItem(ctx context.Context, category types.Category, item *types.FeedbackItem) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (title, description, status)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`, category.Table())

	err := c.db.QueryRow(ctx, query, item.Title, item.Description, item.Status).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", category.Table(), err)
	}
	return nil
}

func (c *RecordClient) InsertResponse(ctx context.Context, resp *types.FeedbackResponse) error {
	err := c.db.QueryRow(ctx, `
        INSERT INTO feedback_responses (type, reference_id, response)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`,
		resp.Type, resp.ReferenceID, resp.Response,
	).Scan(&resp.ID, &resp.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert feedback response: %w", err)
	}
	return nil
}
