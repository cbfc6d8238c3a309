package postgres

import (
	"context"
	"errors"

	apperrors "github.com/OpinaApp/opina-backend/errors"
	"github.com/OpinaApp/opina-backend/internal/store"
	"github.com/OpinaApp/opina-backend/types"
	"github.com/jackc/pgx/v5"
)

// Ensure ResponseStore implements store.ResponseStore
var _ store.ResponseStore = (*ResponseStore)(nil)

// ResponseStore provides read access to the feedback_responses table.
type ResponseStore struct {
	db DB
}

// NewResponseStore creates a ResponseStore backed by the given database handle.
func NewResponseStore(db DB) *ResponseStore {
	return &ResponseStore{db: db}
}

func (s *ResponseStore) List(ctx context.Context, limit, offset int) ([]*types.FeedbackResponse, int, error) {
	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM feedback_responses`).Scan(&total); err != nil {
		return nil, 0, apperrors.NewDatabaseError(err)
	}

	rows, err := s.db.Query(ctx, `
        SELECT id, type, reference_id, response, created_at
        FROM feedback_responses
        ORDER BY created_at DESC, id DESC
        LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError(err)
	}
	defer rows.Close()

	responses, err := scanResponses(rows)
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

func (s *ResponseStore) ListAll(ctx context.Context) ([]*types.FeedbackResponse, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, type, reference_id, response, created_at
        FROM feedback_responses
        ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	defer rows.Close()

	return scanResponses(rows)
}

func (s *ResponseStore) Get(ctx context.Context, id int64) (*types.FeedbackResponse, error) {
	var resp types.FeedbackResponse
	err := s.db.QueryRow(ctx, `
        SELECT id, type, reference_id, response, created_at
        FROM feedback_responses
        WHERE id = $1`, id).
		Scan(&resp.ID, &resp.Type, &resp.ReferenceID, &resp.Response, &resp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ResponseNotFound(id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return &resp, nil
}

func scanResponses(rows pgx.Rows) ([]*types.FeedbackResponse, error) {
	var responses []*types.FeedbackResponse
	for rows.Next() {
		var resp types.FeedbackResponse
		if err := rows.Scan(&resp.ID, &resp.Type, &resp.ReferenceID, &resp.Response, &resp.CreatedAt); err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		responses = append(responses, &resp)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return responses, nil
}
