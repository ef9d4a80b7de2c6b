package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aeg58/crm-v2/internal/lib/api/response"
	"github.com/aeg58/crm-v2/internal/lib/sl"
)

type Core interface {
	Ping(ctx context.Context) error
}

// Health reports liveness and database reachability. It is public and
// unauthenticated so orchestrators can probe it.
func Health(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(sl.Module("http.handlers.health"))

		if handler == nil {
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("Service not available"))
			return
		}

		if err := handler.Ping(r.Context()); err != nil {
			logger.Error("database unreachable", sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("Database unreachable"))
			return
		}

		render.JSON(w, r, response.Ok(map[string]string{"status": "ok"}))
	}
}
