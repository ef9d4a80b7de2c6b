package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/aeg58/crm-v2/internal/lib/api/response"
	"github.com/aeg58/crm-v2/internal/lib/sl"
)

func Stats(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.dashboard")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("dashboard service not available")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Dashboard service not available"))
			return
		}

		stats, err := handler.GetDashboardStats(r.Context())
		if err != nil {
			logger.Error("failed to collect dashboard stats", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Internal server error"))
			return
		}

		render.JSON(w, r, response.Ok(stats))
	}
}
