package types

import "time"

// FeedbackResponse links one response text to a prior suggestion or
// complaint by type + numeric reference.
type FeedbackResponse struct {
	ID          int64     `json:"id"`
	Type        Category  `json:"type"`
	ReferenceID int64     `json:"reference_id"`
	Response    string    `json:"response"`
	CreatedAt   time.Time `json:"created_at"`
}

// ResponseCreate is the admin create form body. The reference is supplied
// explicitly and the text minimum is stricter than on the public form.
type ResponseCreate struct {
	Type        Category `json:"type" binding:"required"`
	ReferenceID int64    `json:"reference_id" binding:"required,min=1"`
	Response    string   `json:"response" binding:"required,min=10"`
}

// ResponseSubmit is the body shared by the public intake form and the admin
// review form: the reference is resolved server-side from the type.
type ResponseSubmit struct {
	Type     Category `json:"type" binding:"required"`
	Response string   `json:"response" binding:"required"`
}

// DashboardStats are the response counts shown on the admin dashboard.
type DashboardStats struct {
	SuggestionCount int `json:"suggestion_count"`
	ComplaintCount  int `json:"complaint_count"`
}
