package middleware

import (
	"net/http"

	"github.com/podcastflow/podcastflow-pro/internal/salesrv/db"
)

// LoadScopedDB checks out a scoped connection for the request and returns it
// to the pool when the request ends.
func LoadScopedDB(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := db.ConnCtx(r.Context())
		defer db.DB(ctx).Close(ctx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
