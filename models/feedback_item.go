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

const (
	minTitleLen       = 2
	minDescriptionLen = 10
)

// FeedbackItemModel owns the suggestion/complaint lifecycle. Its central
// rule: at most one item of a category is active at a time, re-established
// by archiving the previously active items immediately before each new
// active submission.
type FeedbackItemModel struct {
	client store.RecordClient
	store  store.FeedbackItemStore
}

func NewFeedbackItemModel(client store.RecordClient, itemStore store.FeedbackItemStore) *FeedbackItemModel {
	return &FeedbackItemModel{
		client: client,
		store:  itemStore,
	}
}

// SubmitActive runs the archive-then-insert submission sequence:
//
//  1. look up the category's currently active items;
//  2. if any exist, move them all to the category's terminal-positive
//     status in one bulk call (silent — an implementation detail of the
//     submission, not a user action);
//  3. only then insert the new item with status active.
//
// A failure at any step propagates and aborts the remaining steps. There is
// no compensation: if the archive succeeded but the insert failed, the
// category is briefly left with zero active items until the next submission.
// Two overlapping submissions can likewise both pass step 1 and leave two
// active items until a later submission archives them; the store offers no
// transactions to this tier, so the invariant is eventually consistent by
// design.
func (m *FeedbackItemModel) SubmitActive(ctx context.Context, category types.Category, title, description string) (*types.FeedbackItem, error) {
	log := logger.GetLogger()

	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if err := validateSubmission(category, title, description); err != nil {
		return nil, err
	}

	active, err := m.client.QueryByStatus(ctx, category, types.StatusActive)
	if err != nil {
		return nil, errors.NewStoreQueryError(err)
	}

	if len(active) > 0 {
		ids := make([]int64, len(active))
		for i, item := range active {
			ids[i] = item.ID
		}
		log.Debugw("Archiving previously active items",
			"category", category,
			"ids", ids,
			"status", category.TerminalStatus(),
		)
		if err := m.client.BulkUpdateStatus(ctx, category, ids, category.TerminalStatus()); err != nil {
			return nil, errors.NewStoreWriteError("archive", err)
		}
	}

	item := &types.FeedbackItem{
		Title:       title,
		Description: description,
		Status:      types.StatusActive,
	}
	if err := m.client.InsertItem(ctx, category, item); err != nil {
		return nil, errors.NewStoreWriteError("insert", err)
	}

	log.Infow("Feedback item submitted",
		"category", category,
		"id", item.ID,
		"archived", len(active),
	)
	return item, nil
}

func (m *FeedbackItemModel) List(ctx context.Context, category types.Category, limit, offset int) (*types.PaginatedResponse, error) {
	items, total, err := m.store.List(ctx, category, limit, offset)
	if err != nil {
		return nil, err
	}
	return &types.PaginatedResponse{
		Data: items,
		Pagination: types.Pagination{
			Limit:  limit,
			Offset: offset,
			Total:  total,
		},
	}, nil
}

func (m *FeedbackItemModel) Get(ctx context.Context, category types.Category, id int64) (*types.FeedbackItem, error) {
	return m.store.Get(ctx, category, id)
}

func (m *FeedbackItemModel) Update(ctx context.Context, category types.Category, id int64, update *types.FeedbackItemUpdate) error {
	if err := validateUpdate(category, update); err != nil {
		return err
	}
	return m.store.Update(ctx, category, id, update)
}

func (m *FeedbackItemModel) Delete(ctx context.Context, category types.Category, id int64) error {
	return m.store.Delete(ctx, category, id)
}

// validateSubmission gates the submission before any store access: a
// violation means no query, no archive, no insert.
func validateSubmission(category types.Category, title, description string) error {
	var validationErrors []string

	if !category.Valid() {
		validationErrors = append(validationErrors, "unknown category")
	}
	if utf8.RuneCountInString(title) < minTitleLen {
		validationErrors = append(validationErrors, "title must be at least 2 characters")
	}
	if utf8.RuneCountInString(description) < minDescriptionLen {
		validationErrors = append(validationErrors, "description must be at least 10 characters")
	}

	if len(validationErrors) > 0 {
		return errors.ValidationFailed("Invalid feedback item", strings.Join(validationErrors, "; "))
	}
	return nil
}

func validateUpdate(category types.Category, update *types.FeedbackItemUpdate) error {
	if update.Title != nil && utf8.RuneCountInString(strings.TrimSpace(*update.Title)) < minTitleLen {
		return errors.ValidationFailed("Invalid feedback item", "title must be at least 2 characters")
	}
	if update.Description != nil && utf8.RuneCountInString(strings.TrimSpace(*update.Description)) < minDescriptionLen {
		return errors.ValidationFailed("Invalid feedback item", "description must be at least 10 characters")
	}
	if update.Status != nil && !update.Status.ValidFor(category) {
		return errors.ValidationFailed("Invalid feedback item", "status not valid for this category")
	}
	return nil
}
