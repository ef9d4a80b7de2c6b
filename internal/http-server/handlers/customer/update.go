package customer

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/aeg58/crm-v2/entity"
	"github.com/aeg58/crm-v2/internal/lib/api/response"
	"github.com/aeg58/crm-v2/internal/lib/sl"
	"github.com/aeg58/crm-v2/internal/lib/validate"
)

func Update(log *slog.Logger, handler Core) http.HandlerFunc {
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

		var patch entity.CustomerPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if err := validate.Struct(patch); err != nil {
			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validationErrs))
				return
			}
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		customer, err := handler.UpdateCustomer(r.Context(), id, patch)
		if err != nil {
			renderError(logger, w, r, err)
			return
		}

		logger.Debug("customer updated", slog.String("customer_id", customer.ID))
		render.JSON(w, r, response.Ok(customer))
	}
}
