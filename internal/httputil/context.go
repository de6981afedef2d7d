package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const personIDKey contextKey = "personID"

// WithPersonID adds the authenticated person id to the request context
func WithPersonID(r *http.Request, personID string) *http.Request {
	ctx := context.WithValue(r.Context(), personIDKey, personID)
	return r.WithContext(ctx)
}

// GetPersonID retrieves the authenticated person id from the context.
// Empty string means the request is anonymous.
func GetPersonID(r *http.Request) string {
	personID, _ := r.Context().Value(personIDKey).(string)
	return personID
}
