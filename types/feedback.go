package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Category identifies which kind of feedback item a record belongs to.
// The literals are part of the wire contract with the frontend.
type Category string

const (
	CategorySuggestion Category = "suggestion"
	CategoryComplaint  Category = "complaint"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategorySuggestion || c == CategoryComplaint
}

// Table returns the store table holding items of this category.
func (c Category) Table() string {
	if c == CategoryComplaint {
		return "complaints"
	}
	return "suggestions"
}

// TerminalStatus returns the category's "successfully handled" status:
// approved for suggestions, resolved for complaints.
func (c Category) TerminalStatus() ItemStatus {
	if c == CategoryComplaint {
		return StatusResolved
	}
	return StatusApproved
}

// UnmarshalJSON rejects unknown category literals at the boundary so bad
// values never reach business logic.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	cat := Category(s)
	if !cat.Valid() {
		return fmt.Errorf("unknown feedback category %q", s)
	}
	*c = cat
	return nil
}

// ItemStatus is the lifecycle state of a feedback item. The literals are
// part of the wire contract and must not be renamed.
type ItemStatus string

const (
	StatusActive   ItemStatus = "active"
	StatusPending  ItemStatus = "pending"
	StatusApproved ItemStatus = "approved"
	StatusResolved ItemStatus = "resolved"
	StatusRejected ItemStatus = "rejected"
)

// Valid reports whether s is a known status literal.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusApproved, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// ValidFor reports whether s belongs to the status domain of category c.
// Suggestions terminate in approved, complaints in resolved.
func (s ItemStatus) ValidFor(c Category) bool {
	switch s {
	case StatusActive, StatusPending, StatusRejected:
		return true
	case StatusApproved:
		return c == CategorySuggestion
	case StatusResolved:
		return c == CategoryComplaint
	}
	return false
}

// UnmarshalJSON rejects unknown status literals at the boundary.
func (s *ItemStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	status := ItemStatus(str)
	if !status.Valid() {
		return fmt.Errorf("unknown item status %q", str)
	}
	*s = status
	return nil
}

// Ptr is a convenience for building update patches.
func (s ItemStatus) Ptr() *ItemStatus {
	return &s
}

// FeedbackItem is a suggestion or complaint row. The category is carried by
// the table the row lives in, not by a column.
type FeedbackItem struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      ItemStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FeedbackItemCreate is the request body for submitting a new item.
type FeedbackItemCreate struct {
	Title       string `json:"title" binding:"required,min=2,max=200"`
	Description string `json:"description" binding:"required,min=10,max=5000"`
}

// FeedbackItemUpdate is a partial update applied through the admin API.
type FeedbackItemUpdate struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Status      *ItemStatus `json:"status,omitempty"`
}
