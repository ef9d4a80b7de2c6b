package timeout

import (
	"context"
	"net/http"
	"time"
)

// Timeout cancels the request context after the given number of
// seconds. Handlers doing I/O observe the cancellation through ctx.
func Timeout(seconds int) func(next http.Handler) http.Handler {
	duration := time.Duration(seconds) * time.Second

	return func(next http.Handler) http.Handler {

		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}
