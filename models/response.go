package models

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/OpinaApp/opina-backend/errors"
	"github.com/OpinaApp/opina-backend/internal/store"
	"github.com/OpinaApp/opina-backend/logger"
	"github.com/OpinaApp/opina-backend/types"
)

const minAdminResponseLen = 10

// fallbackReferenceID is returned when no candidate item exists for a
// response. A degraded default carried over from the original product: a
// response is always linked to something, even if that something is the
// seed record.
const fallbackReferenceID = 1

// ResponseModel links feedback responses to prior suggestions/complaints
// and serves the dashboard reads over the response set.
type ResponseModel struct {
	client store.RecordClient
	store  store.ResponseStore
}

func NewResponseModel(client store.RecordClient, responseStore store.ResponseStore) *ResponseModel {
	return &ResponseModel{
		client: client,
		store:  responseStore,
	}
}

// ResolveReference picks the item a new response of the given category
// attaches to: the lowest-id item currently in candidateStatus. The public
// intake resolves against active items; the admin review flow against the
// category's terminal-positive status. It never fails — with no candidates
// (or an unreachable store) it falls back to id 1.
func (m *ResponseModel) ResolveReference(ctx context.Context, category types.Category, candidateStatus types.ItemStatus) int64 {
	log := logger.GetLogger()

	items, err := m.client.QueryByStatus(ctx, category, candidateStatus)
	if err != nil {
		log.Warnw("Reference lookup failed, using fallback id",
			"category", category,
			"status", candidateStatus,
			"error", err,
		)
		return fallbackReferenceID
	}
	if len(items) == 0 {
		return fallbackReferenceID
	}

	ref := items[0].ID
	for _, item := range items[1:] {
		if item.ID < ref {
			ref = item.ID
		}
	}
	return ref
}

// SubmitResponse handles the two reference-resolving call sites (public
// intake and admin review). Both require only non-empty trimmed text; the
// candidate status distinguishes them.
func (m *ResponseModel) SubmitResponse(ctx context.Context, category types.Category, text string, candidateStatus types.ItemStatus) (*types.FeedbackResponse, error) {
	if !category.Valid() {
		return nil, errors.ValidationFailed("Invalid response", "unknown feedback type")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.ValidationFailed("Invalid response", "response must not be blank")
	}

	resp := &types.FeedbackResponse{
		Type:        category,
		ReferenceID: m.ResolveReference(ctx, category, candidateStatus),
		Response:    text,
	}
	if err := m.client.InsertResponse(ctx, resp); err != nil {
		return nil, errors.NewStoreWriteError("insert feedback response", err)
	}

	logger.GetLogger().Infow("Feedback response submitted",
		"type", category,
		"reference_id", resp.ReferenceID,
		"id", resp.ID,
	)
	return resp, nil
}

// CreateResponse handles the admin create form: the reference id is given
// explicitly and the text minimum is stricter than on the public form. The
// reference is not re-validated against the store.
func (m *ResponseModel) CreateResponse(ctx context.Context, req *types.ResponseCreate) (*types.FeedbackResponse, error) {
	if !req.Type.Valid() {
		return nil, errors.ValidationFailed("Invalid response", "unknown feedback type")
	}
	if req.ReferenceID < 1 {
		return nil, errors.ValidationFailed("Invalid response", "reference id is required")
	}

	text := strings.TrimSpace(req.Response)
	if utf8.RuneCountInString(text) < minAdminResponseLen {
		return nil, errors.ValidationFailed("Invalid response", "response must be at least 10 characters")
	}

	resp := &types.FeedbackResponse{
		Type:        req.Type,
		ReferenceID: req.ReferenceID,
		Response:    text,
	}
	if err := m.client.InsertResponse(ctx, resp); err != nil {
		return nil, errors.NewStoreWriteError("insert feedback response", err)
	}
	return resp, nil
}

func (m *ResponseModel) List(ctx context.Context, limit, offset int) (*types.PaginatedResponse, error) {
	responses, total, err := m.store.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &types.PaginatedResponse{
		Data: responses,
		Pagination: types.Pagination{
			Limit:  limit,
			Offset: offset,
			Total:  total,
		},
	}, nil
}

func (m *ResponseModel) Get(ctx context.Context, id int64) (*types.FeedbackResponse, error) {
	return m.store.Get(ctx, id)
}

// Dashboard computes the per-type response counts over the full response set.
func (m *ResponseModel) Dashboard(ctx context.Context) (*types.DashboardStats, error) {
	responses, err := m.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stats := ComputeAggregates(responses)
	return &stats, nil
}

// ExportCSV renders the full response set as CSV.
func (m *ResponseModel) ExportCSV(ctx context.Context) (string, error) {
	responses, err := m.store.ListAll(ctx)
	if err != nil {
		return "", err
	}
	return ResponsesCSV(responses), nil
}
