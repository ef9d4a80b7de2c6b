package lead

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/aeg58/crm-v2/internal/lib/api/response"
	"github.com/aeg58/crm-v2/internal/lib/sl"
)

func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.lead")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("lead service not available")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Lead service not available"))
			return
		}

		status := r.URL.Query().Get("status")
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		leads, err := handler.ListLeads(r.Context(), status, limit, offset)
		if err != nil {
			renderError(logger, w, r, err)
			return
		}

		render.JSON(w, r, response.Ok(leads))
	}
}
