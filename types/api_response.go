package types

// StatusResponse is the body returned by endpoints that only signal success.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the error body produced by the error handler middleware.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Pagination describes the window of a paginated list response.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// PaginatedResponse wraps list data with its pagination window.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}
