package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/OpinaApp/opina-backend/internal/store"
	"github.com/OpinaApp/opina-backend/logger"
	"github.com/OpinaApp/opina-backend/types"
	"go.uber.org/zap"
)

// Ensure SupabaseService implements store.RecordClient
var _ store.RecordClient = (*SupabaseService)(nil)

// SupabaseService implements the record client against the Supabase REST
// API. Every call is one HTTP request against /rest/v1 — the hosted store
// exposes no multi-statement transactions to this tier, which is why the
// submission lifecycle is specified as separate archive and insert calls.
type SupabaseService struct {
	supabaseURL string
	supabaseKey string
	httpClient  *http.Client
	logger      *zap.SugaredLogger
}

// SupabaseServiceConfig contains configuration for the Supabase service.
type SupabaseServiceConfig struct {
	SupabaseURL string
	SupabaseKey string
}

// NewSupabaseService creates a new Supabase-backed record client.
func NewSupabaseService(config SupabaseServiceConfig) *SupabaseService {
	return &SupabaseService{
		supabaseURL: strings.TrimRight(config.SupabaseURL, "/"),
		supabaseKey: config.SupabaseKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.GetLogger(),
	}
}

// QueryByStatus fetches all rows of the category's table in the given
// status, ordered by ascending id so reference resolution is deterministic.
func (s *SupabaseService) QueryByStatus(ctx context.Context, category types.Category, status types.ItemStatus) ([]types.FeedbackItem, error) {
	reqURL := fmt.Sprintf("%s/rest/v1/%s?status=eq.%s&order=id.asc",
		s.supabaseURL, category.Table(), url.QueryEscape(string(status)))

	body, err := s.do(ctx, http.MethodGet, reqURL, nil, "")
	if err != nil {
		return nil, err
	}

	var items []types.FeedbackItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode %s rows: %w", category.Table(), err)
	}
	return items, nil
}

// BulkUpdateStatus patches the status of every listed id in one call.
func (s *SupabaseService) BulkUpdateStatus(ctx context.Context, category types.Category, ids []int64, status types.ItemStatus) error {
	if len(ids) == 0 {
		return nil
	}

	idList := make([]string, len(ids))
	for i, id := range ids {
		idList[i] = strconv.FormatInt(id, 10)
	}
	reqURL := fmt.Sprintf("%s/rest/v1/%s?id=in.(%s)",
		s.supabaseURL, category.Table(), strings.Join(idList, ","))

	payload := map[string]any{"status": status}
	_, err := s.do(ctx, http.MethodPatch, reqURL, payload, "")
	return err
}

// InsertItem inserts a new item and reads the created row back from the
// response representation.
func (s *SupabaseService) InsertItem(ctx context.Context, category types.Category, item *types.FeedbackItem) error {
	reqURL := fmt.Sprintf("%s/rest/v1/%s", s.supabaseURL, category.Table())

	payload := map[string]any{
		"title":       item.Title,
		"description": item.Description,
		"status":      item.Status,
	}

	body, err := s.do(ctx, http.MethodPost, reqURL, payload, "return=representation")
	if err != nil {
		return err
	}

	var created []types.FeedbackItem
	if err := json.Unmarshal(body, &created); err != nil {
		return fmt.Errorf("decode created %s row: %w", category.Table(), err)
	}
	if len(created) != 1 {
		return fmt.Errorf("expected 1 created row, got %d", len(created))
	}
	*item = created[0]
	return nil
}

// InsertResponse inserts a new feedback response row.
func (s *SupabaseService) InsertResponse(ctx context.Context, resp *types.FeedbackResponse) error {
	reqURL := fmt.Sprintf("%s/rest/v1/feedback_responses", s.supabaseURL)

	payload := map[string]any{
		"type":         resp.Type,
		"reference_id": resp.ReferenceID,
		"response":     resp.Response,
	}

	body, err := s.do(ctx, http.MethodPost, reqURL, payload, "return=representation")
	if err != nil {
		return err
	}

	var created []types.FeedbackResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return fmt.Errorf("decode created response row: %w", err)
	}
	if len(created) != 1 {
		return fmt.Errorf("expected 1 created row, got %d", len(created))
	}
	*resp = created[0]
	return nil
}

// do sends a single REST request with the service-role headers and returns
// the response body. Non-2xx statuses become errors carrying the status code.
func (s *SupabaseService) do(ctx context.Context, method, reqURL string, payload any, prefer string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}

	req.Header.Set("apikey", s.supabaseKey)
	req.Header.Set("Authorization", "Bearer "+s.supabaseKey)
	req.Header.Set("Content-Type", "application/json")
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s request: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 300 {
		s.logger.Warnw("Supabase request failed",
			"method", method,
			"status", resp.StatusCode,
			"url", reqURL,
		)
		return nil, fmt.Errorf("supabase %s returned status code %d", method, resp.StatusCode)
	}

	return body, nil
}
