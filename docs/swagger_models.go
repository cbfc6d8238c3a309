package docs

import (
	"time"
)

// This file contains models used by Swagger documentation
// It doesn't affect the actual application logic, just documentation

// FeedbackItemResponse is used for Swagger documentation
// @Description A suggestion or complaint record
type FeedbackItemResponse struct {
	// The record ID
	ID int64 `json:"id" example:"42"`

	// Short title
	Title string `json:"title" example:"Longer opening hours"`

	// Full description
	Description string `json:"description" example:"It would help commuters if the store opened at 7am."`

	// Lifecycle status
	Status string `json:"status" example:"active"`

	// When the record was created
	CreatedAt time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
}

// FeedbackResponseDoc is used for Swagger documentation
// @Description A response submitted against a suggestion or complaint
type FeedbackResponseDoc struct {
	// The response ID
	ID int64 `json:"id" example:"7"`

	// The category the response refers to
	Type string `json:"type" example:"suggestion"`

	// The ID of the referenced record
	ReferenceID int64 `json:"reference_id" example:"42"`

	// Free-form response text
	Response string `json:"response" example:"Great idea, we will trial it next month."`

	// When the response was created
	CreatedAt time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
}

// ErrorResponse represents an error response
// @Description Error information
type ErrorResponse struct {
	// Error code
	Code string `json:"code" example:"VALIDATION_ERROR"`

	// Error message
	Message string `json:"message" example:"Invalid request parameters"`

	// Detailed error information
	Details string `json:"details,omitempty" example:"title must be at least 2 characters"`
}
