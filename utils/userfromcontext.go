package utils

import (
	"net/http"

	"needwise/globals"
)

// GetUserIDFromRequest pulls the user id the middleware stored on the
// request context. Empty string means the middleware did not run.
func GetUserIDFromRequest(r *http.Request) string {
	if v, ok := r.Context().Value(globals.UserIDKey).(string); ok {
		return v
	}
	return ""
}
