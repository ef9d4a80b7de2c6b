package customer

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/aeg58/crm-v2/internal/lib/api/response"
	"github.com/aeg58/crm-v2/internal/lib/sl"
)

func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.customer")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("customer service not available")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Customer service not available"))
			return
		}

		id := chi.URLParam(r, "id")
		if id == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Customer id is required"))
			return
		}

		customer, err := handler.GetCustomer(r.Context(), id)
		if err != nil {
			renderError(logger, w, r, err)
			return
		}

		render.JSON(w, r, response.Ok(customer))
	}
}
