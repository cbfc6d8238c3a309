package postgres

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/OpinaApp/opina-backend/errors"
	"github.com/OpinaApp/opina-backend/internal/store"
	"github.com/OpinaApp/opina-backend/types"
	"github.com/jackc/pgx/v5"
)

// Ensure ItemStore implements store.FeedbackItemStore
var _ store.FeedbackItemStore = (*ItemStore)(nil)

// ItemStore provides admin-side access to the suggestions and complaints
// tables.
type ItemStore struct {
	db DB
}

// NewItemStore creates an ItemStore backed by the given database handle.
func NewItemStore(db DB) *ItemStore {
	return &ItemStore{db: db}
}

func (s *ItemStore) List(ctx context.Context, category types.Category, limit, offset int) ([]*types.FeedbackItem, int, error) {
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, category.Table())
	if err := s.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, apperrors.NewDatabaseError(err)
	}

	query := fmt.Sprintf(`
        SELECT id, title, description, status, created_at
        FROM %s
        ORDER BY created_at DESC, id DESC
        LIMIT $1 OFFSET $2`, category.Table())

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError(err)
	}
	defer rows.Close()

	var items []*types.FeedbackItem
	for rows.Next() {
		var item types.FeedbackItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Status, &item.CreatedAt); err != nil {
			return nil, 0, apperrors.NewDatabaseError(err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewDatabaseError(err)
	}

	return items, total, nil
}

func (s *ItemStore) Get(ctx context.Context, category types.Category, id int64) (*types.FeedbackItem, error) {
	query := fmt.Sprintf(`
        SELECT id, title, description, status, created_at
        FROM %s
        WHERE id = $1`, category.Table())

	var item types.FeedbackItem
	err := s.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Title, &item.Description, &item.Status, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(category, id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return &item, nil
}

func (s *ItemStore) Update(ctx context.Context, category types.Category, id int64, update *types.FeedbackItemUpdate) error {
	query := fmt.Sprintf(`UPDATE %s SET id = id`, category.Table())

	args := []any{id}
	paramCount := 1

	if update.Title != nil {
		paramCount++
		query += fmt.Sprintf(", title = $%d", paramCount)
		args = append(args, *update.Title)
	}
	if update.Description != nil {
		paramCount++
		query += fmt.Sprintf(", description = $%d", paramCount)
		args = append(args, *update.Description)
	}
	if update.Status != nil {
		paramCount++
		query += fmt.Sprintf(", status = $%d", paramCount)
		args = append(args, *update.Status)
	}

	query += " WHERE id = $1 RETURNING id"

	var returnedID int64
	err := s.db.QueryRow(ctx, query, args...).Scan(&returnedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound(category, id)
		}
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (s *ItemStore) Delete(ctx context.Context, category types.Category, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, category.Table())

	tag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return apperrors.NewDatabaseError(err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(category, id)
	}
	return nil
}

func notFound(category types.Category, id int64) error {
	if category == types.CategoryComplaint {
		return apperrors.ComplaintNotFound(id)
	}
	return apperrors.SuggestionNotFound(id)
}
