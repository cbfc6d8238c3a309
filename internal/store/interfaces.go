// Package store defines the persistence interfaces the business models
// depend on. Implementations live in subpackages (postgres) and in the
// services package (Supabase REST).
package store

import (
	"context"

	"github.com/OpinaApp/opina-backend/types"
)

// RecordClient is the narrow store-access capability used by the submission
// lifecycle and response linkage. Every method is a single network call with
// at most one equality predicate; there are no multi-statement transactions,
// matching what the hosted store exposes to this tier.
type RecordClient interface {
	// QueryByStatus returns all items of the category in the given status,
	// ordered by ascending id.
	QueryByStatus(ctx context.Context, category types.Category, status types.ItemStatus) ([]types.FeedbackItem, error)
	// BulkUpdateStatus sets the status of every listed id in one call.
	BulkUpdateStatus(ctx context.Context, category types.Category, ids []int64, status types.ItemStatus) error
	// InsertItem inserts a new item and fills in the store-assigned id and
	// created_at.
	InsertItem(ctx context.Context, category types.Category, item *types.FeedbackItem) error
	// InsertResponse inserts a new feedback response and fills in the
	// store-assigned id and created_at.
	InsertResponse(ctx context.Context, resp *types.FeedbackResponse) error
}

// FeedbackItemStore handles admin-side reads and edits of suggestions and
// complaints.
type FeedbackItemStore interface {
	List(ctx context.Context, category types.Category, limit, offset int) ([]*types.FeedbackItem, int, error)
	Get(ctx context.Context, category types.Category, id int64) (*types.FeedbackItem, error)
	Update(ctx context.Context, category types.Category, id int64, update *types.FeedbackItemUpdate) error
	Delete(ctx context.Context, category types.Category, id int64) error
}

// ResponseStore handles reads of feedback responses for the admin list,
// dashboard and CSV export.
type ResponseStore interface {
	List(ctx context.Context, limit, offset int) ([]*types.FeedbackResponse, int, error)
	// ListAll returns the full response set, newest first. The dashboard
	// aggregates and the CSV export both run over this.
	ListAll(ctx context.Context) ([]*types.FeedbackResponse, error)
	Get(ctx context.Context, id int64) (*types.FeedbackResponse, error)
}
