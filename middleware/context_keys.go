package middleware

// ContextKey is the type for values stored on the gin context by middleware.
type ContextKey string

const (
	// UserIDKey holds the authenticated admin's Supabase user id.
	UserIDKey ContextKey = "user_id"
	// RequestIDKey holds the per-request correlation id.
	RequestIDKey = "request_id"
)
