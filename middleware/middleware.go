package middleware

import (
	"context"
	"net/http"

	"needwise/globals"

	"github.com/julienschmidt/httprouter"
)

// WithUser resolves the acting user into the request context. There is no
// authentication in this system: the X-User-ID header selects an account
// and everything else falls back to the seeded demo user.
func WithUser(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			userID = globals.DemoUserID
		}
		ctx := context.WithValue(r.Context(), globals.UserIDKey, userID)
		next(w, r.WithContext(ctx), ps)
	}
}
