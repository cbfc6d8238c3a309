package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/OpinaApp/opina-backend/middleware"
	"github.com/OpinaApp/opina-backend/models"
	"github.com/OpinaApp/opina-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockResponseStore struct {
	mock.Mock
}

func (m *mockResponseStore) List(ctx context.Context, limit, offset int) ([]*types.FeedbackResponse, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*types.FeedbackResponse), args.Int(1), args.Error(2)
}

func (m *mockResponseStore) ListAll(ctx context.Context) ([]*types.FeedbackResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.FeedbackResponse), args.Error(1)
}

func (m *mockResponseStore) Get(ctx context.Context, id int64) (*types.FeedbackResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FeedbackResponse), args.Error(1)
}

func responseTestRouter(client *mockRecordClient, store *mockResponseStore) *gin.Engine {
	handler := NewResponseHandler(models.NewResponseModel(client, store))

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.POST("/v1/feedback", handler.Submit)
	router.POST("/v1/responses", handler.Create)
	router.POST("/v1/responses/review", handler.Review)
	router.GET("/v1/responses", handler.List)
	router.GET("/v1/responses/dashboard", handler.Dashboard)
	router.GET("/v1/responses/export", handler.ExportCSV)
	router.GET("/v1/responses/:id", handler.Get)
	return router
}

func TestResponseHandler_Submit(t *testing.T) {
	client := new(mockRecordClient)
	router := responseTestRouter(client, new(mockResponseStore))

	// The public form links against the currently active item
	client.On("QueryByStatus", mock.Anything, types.CategoryComplaint, types.StatusActive).
		Return([]types.FeedbackItem{{ID: 3}}, nil)
	client.On("InsertResponse", mock.Anything, mock.MatchedBy(func(r *types.FeedbackResponse) bool {
		return r.ReferenceID == 3 && r.Response == "the queue was out the door"
	})).Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/feedback",
		bytes.NewBufferString(`{"type":"complaint","response":"the queue was out the door"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	client.AssertExpectations(t)
}

func TestResponseHandler_Submit_UnknownType(t *testing.T) {
	client := new(mockRecordClient)
	router := responseTestRouter(client, new(mockResponseStore))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/feedback",
		bytes.NewBufferString(`{"type":"rant","response":"not a real category"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	client.AssertNotCalled(t, "InsertResponse", mock.Anything, mock.Anything)
}

func TestResponseHandler_Review_ResolvesAgainstTerminalStatus(t *testing.T) {
	client := new(mockRecordClient)
	router := responseTestRouter(client, new(mockResponseStore))

	// Review responses attach to already-approved suggestions
	client.On("QueryByStatus", mock.Anything, types.CategorySuggestion, types.StatusApproved).
		Return([]types.FeedbackItem{{ID: 14}}, nil)
	client.On("InsertResponse", mock.Anything, mock.MatchedBy(func(r *types.FeedbackResponse) bool {
		return r.ReferenceID == 14
	})).Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/responses/review",
		bytes.NewBufferString(`{"type":"suggestion","response":"rolling this out next quarter"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	client.AssertExpectations(t)
}

func TestResponseHandler_Create_RequiresReference(t *testing.T) {
	client := new(mockRecordClient)
	router := responseTestRouter(client, new(mockResponseStore))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/responses",
		bytes.NewBufferString(`{"type":"suggestion","response":"a long enough admin response"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	client.AssertNotCalled(t, "InsertResponse", mock.Anything, mock.Anything)
}

func TestResponseHandler_Dashboard(t *testing.T) {
	store := new(mockResponseStore)
	router := responseTestRouter(new(mockRecordClient), store)

	store.On("ListAll", mock.Anything).Return([]*types.FeedbackResponse{
		{ID: 1, Type: types.CategorySuggestion},
		{ID: 2, Type: types.CategorySuggestion},
		{ID: 3, Type: types.CategoryComplaint},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/responses/dashboard", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var stats types.DashboardStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.SuggestionCount)
	assert.Equal(t, 1, stats.ComplaintCount)
}

func TestResponseHandler_ExportCSV(t *testing.T) {
	store := new(mockResponseStore)
	router := responseTestRouter(new(mockRecordClient), store)

	created := time.Date(2024, 7, 9, 10, 0, 0, 0, time.UTC)
	store.On("ListAll", mock.Anything).Return([]*types.FeedbackResponse{
		{ID: 1, Type: types.CategorySuggestion, ReferenceID: 2, Response: "love it", CreatedAt: created},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/responses/export", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=feedback-responses-")
	assert.Contains(t, w.Body.String(), "ID,Type,Reference ID,Response,Created At")
	assert.Contains(t, w.Body.String(), `"1","suggestion","2","love it","2024-07-09"`)
}

func TestResponseHandler_Get(t *testing.T) {
	store := new(mockResponseStore)
	router := responseTestRouter(new(mockRecordClient), store)

	store.On("Get", mock.Anything, int64(9)).Return(&types.FeedbackResponse{
		ID: 9, Type: types.CategoryComplaint, ReferenceID: 4, Response: "resolved in store",
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/responses/9", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "resolved in store")
}
