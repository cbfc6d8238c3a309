package models

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/OpinaApp/opina-backend/errors"
	"github.com/OpinaApp/opina-backend/logger"
	"github.com/OpinaApp/opina-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

type MockRecordClient struct {
	mock.Mock
}

func (m *MockRecordClient) QueryByStatus(ctx context.Context, category types.Category, status types.ItemStatus) ([]types.FeedbackItem, error) {
	args := m.Called(ctx, category, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.FeedbackItem), args.Error(1)
}

func (m *MockRecordClient) BulkUpdateStatus(ctx context.Context, category types.Category, ids []int64, status types.ItemStatus) error {
	args := m.Called(ctx, category, ids, status)
	return args.Error(0)
}

func (m *MockRecordClient) InsertItem(ctx context.Context, category types.Category, item *types.FeedbackItem) error {
	args := m.Called(ctx, category, item)
	return args.Error(0)
}

func (m *MockRecordClient) InsertResponse(ctx context.Context, resp *types.FeedbackResponse) error {
	args := m.Called(ctx, resp)
	return args.Error(0)
}

type MockItemStore struct {
	mock.Mock
}

func (m *MockItemStore) List(ctx context.Context, category types.Category, limit, offset int) ([]*types.FeedbackItem, int, error) {
	args := m.Called(ctx, category, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*types.FeedbackItem), args.Int(1), args.Error(2)
}

func (m *MockItemStore) Get(ctx context.Context, category types.Category, id int64) (*types.FeedbackItem, error) {
	args := m.Called(ctx, category, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FeedbackItem), args.Error(1)
}

func (m *MockItemStore) Update(ctx context.Context, category types.Category, id int64, update *types.FeedbackItemUpdate) error {
	args := m.Called(ctx, category, id, update)
	return args.Error(0)
}

func (m *MockItemStore) Delete(ctx context.Context, category types.Category, id int64) error {
	args := m.Called(ctx, category, id)
	return args.Error(0)
}

func TestSubmitActive_NoActiveItems(t *testing.T) {
	mockClient := new(MockRecordClient)
	model := NewFeedbackItemModel(mockClient, new(MockItemStore))
	ctx := context.Background()

	mockClient.On("QueryByStatus", ctx, types.CategorySuggestion, types.StatusActive).
		Return([]types.FeedbackItem{}, nil)
	mockClient.On("InsertItem", ctx, types.CategorySuggestion, mock.AnythingOfType("*types.FeedbackItem")).
		Run(func(args mock.Arguments) {
			item := args.Get(2).(*types.FeedbackItem)
			item.ID = 11
			item.CreatedAt = time.Now()
		}).
		Return(nil)

	item, err := model.SubmitActive(ctx, types.CategorySuggestion, "Open earlier", "Opening at 7am would help commuters a lot")
	require.NoError(t, err)
	assert.Equal(t, int64(11), item.ID)
	assert.Equal(t, types.StatusActive, item.Status)

	// No archive call when nothing was active
	mockClient.AssertNotCalled(t, "BulkUpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockClient.AssertExpectations(t)
}

func TestSubmitActive_ArchivesExistingComplaint(t *testing.T) {
	mockClient := new(MockRecordClient)
	model := NewFeedbackItemModel(mockClient, new(MockItemStore))
	ctx := context.Background()

	mockClient.On("QueryByStatus", ctx, types.CategoryComplaint, types.StatusActive).
		Return([]types.FeedbackItem{{ID: 5, Title: "Cold food", Status: types.StatusActive}}, nil)
	// Complaints archive to resolved, not approved
	mockClient.On("BulkUpdateStatus", ctx, types.CategoryComplaint, []int64{5}, types.StatusResolved).
		Return(nil)
	mockClient.On("InsertItem", ctx, types.CategoryComplaint, mock.AnythingOfType("*types.FeedbackItem")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*types.FeedbackItem).ID = 6
		}).
		Return(nil)

	item, err := model.SubmitActive(ctx, types.CategoryComplaint, "Slow service", "Waited forty minutes for a sandwich today")
	require.NoError(t, err)
	assert.Equal(t, int64(6), item.ID)
	mockClient.AssertExpectations(t)
}

func TestSubmitActive_ArchivesAllActiveSuggestions(t *testing.T) {
	mockClient := new(MockRecordClient)
	model := NewFeedbackItemModel(mockClient, new(MockItemStore))
	ctx := context.Background()

	// Two active rows (leftover from a race): one submission sweeps both
	mockClient.On("QueryByStatus", ctx, types.CategorySuggestion, types.StatusActive).
		Return([]types.FeedbackItem{{ID: 3}, {ID: 9}}, nil)
	mockClient.On("BulkUpdateStatus", ctx, types.CategorySuggestion, []int64{3, 9}, types.StatusApproved).
		Return(nil)
	mockClient.On("InsertItem", ctx, types.CategorySuggestion, mock.AnythingOfType("*types.FeedbackItem")).
		Return(nil)

	_, err := model.SubmitActive(ctx, types.CategorySuggestion, "Loyalty card", "A stamp card for regulars would bring people back")
	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestSubmitActive_ValidationSkipsStore(t *testing.T) {
	mockClient := new(MockRecordClient)
	model := NewFeedbackItemModel(mockClient, new(MockItemStore))
	ctx := context.Background()

	cases := []struct {
		name        string
		title       string
		description string
	}{
		{"short title", "A", "A perfectly long enough description"},
		{"short description", "Good title", "too short"},
		{"whitespace only", "   ", "          "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := model.SubmitActive(ctx, types.CategorySuggestion, tc.title, tc.description)
			require.Error(t, err)
			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ValidationError, appErr.Type)
		})
	}

	// Invalid input never reaches the store
	mockClient.AssertNotCalled(t, "QueryByStatus", mock.Anything, mock.Anything, mock.Anything)
	mockClient.AssertNotCalled(t, "InsertItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitActive_QueryFailureAbortsSequence(t *testing.T) {
	mockClient := new(MockRecordClient)
	model := NewFeedbackItemModel(mockClient, new(MockItemStore))
	ctx := context.Background()

	mockClient.On("QueryByStatus", ctx, types.CategorySuggestion, types.StatusActive).
		Return(nil, errors.New("connection refused"))

	_, err := model.SubmitActive(ctx, types.CategorySuggestion, "Title ok", "Description that is long enough to pass")
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.DatabaseError, appErr.Type)

	mockClient.AssertNotCalled(t, "BulkUpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockClient.AssertNotCalled(t, "InsertItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitActive_ArchiveFailureSkipsInsert(t *testing.T) {
	mockClient := new(MockRecordClient)
	model := NewFeedbackItemModel(mockClient, new(MockItemStore))
	ctx := context.Background()

	mockClient.On("QueryByStatus", ctx, types.CategoryComplaint, types.StatusActive).
		Return([]types.FeedbackItem{{ID: 2}}, nil)
	mockClient.On("BulkUpdateStatus", ctx, types.CategoryComplaint, []int64{2}, types.StatusResolved).
		Return(errors.New("write timeout"))

	_, err := model.SubmitActive(ctx, types.CategoryComplaint, "Broken door", "The side entrance door has been jammed all week")
	require.Error(t, err)

	// The previously active item keeps whatever state the failed call left;
	// the new item is never inserted.
	mockClient.AssertNotCalled(t, "InsertItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitActive_InsertFailureAfterArchive(t *testing.T) {
	mockClient := new(MockRecordClient)
	model := NewFeedbackItemModel(mockClient, new(MockItemStore))
	ctx := context.Background()

	mockClient.On("QueryByStatus", ctx, types.CategorySuggestion, types.StatusActive).
		Return([]types.FeedbackItem{{ID: 4}}, nil)
	mockClient.On("BulkUpdateStatus", ctx, types.CategorySuggestion, []int64{4}, types.StatusApproved).
		Return(nil)
	mockClient.On("InsertItem", ctx, types.CategorySuggestion, mock.AnythingOfType("*types.FeedbackItem")).
		Return(errors.New("insert failed"))

	// Archive already happened; failure propagates with no compensation
	_, err := model.SubmitActive(ctx, types.CategorySuggestion, "New menu", "Seasonal dishes would keep the menu interesting")
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.DatabaseError, appErr.Type)
	mockClient.AssertExpectations(t)
}

func TestUpdate_StatusValidatedPerCategory(t *testing.T) {
	mockStore := new(MockItemStore)
	model := NewFeedbackItemModel(new(MockRecordClient), mockStore)
	ctx := context.Background()

	// resolved belongs to complaints, not suggestions
	badStatus := types.StatusResolved
	err := model.Update(ctx, types.CategorySuggestion, 1, &types.FeedbackItemUpdate{Status: &badStatus})
	require.Error(t, err)
	mockStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	goodStatus := types.StatusApproved
	mockStore.On("Update", ctx, types.CategorySuggestion, int64(1), mock.Anything).Return(nil)
	err = model.Update(ctx, types.CategorySuggestion, 1, &types.FeedbackItemUpdate{Status: &goodStatus})
	require.NoError(t, err)
	mockStore.AssertExpectations(t)
}

func TestList_WrapsPagination(t *testing.T) {
	mockStore := new(MockItemStore)
	model := NewFeedbackItemModel(new(MockRecordClient), mockStore)
	ctx := context.Background()

	items := []*types.FeedbackItem{{ID: 1, Title: "One"}, {ID: 2, Title: "Two"}}
	mockStore.On("List", ctx, types.CategoryComplaint, 20, 0).Return(items, 42, nil)

	page, err := model.List(ctx, types.CategoryComplaint, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 42, page.Pagination.Total)
	assert.Equal(t, 20, page.Pagination.Limit)
	mockStore.AssertExpectations(t)
}
