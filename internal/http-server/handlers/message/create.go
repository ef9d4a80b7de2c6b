package message

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/aeg58/crm-v2/entity"
	"github.com/aeg58/crm-v2/internal/lib/api/response"
	"github.com/aeg58/crm-v2/internal/lib/sl"
	"github.com/aeg58/crm-v2/internal/lib/validate"
)

type CreateRequest struct {
	CustomerID string          `json:"customer_id" validate:"required"`
	Content    string          `json:"content" validate:"required"`
	Direction  string          `json:"direction"`
	Platform   string          `json:"platform"`
	Metadata   json.RawMessage `json:"metadata"`
}

func Create(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.message")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("message service not available")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Message service not available"))
			return
		}

		var req CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if err := validate.Struct(req); err != nil {
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

		message, err := handler.CreateMessage(r.Context(), req.CustomerID, req.Content, req.Direction, req.Platform, req.Metadata)
		if err != nil {
			// ErrNotFound here means the target customer does not exist.
			if errors.Is(err, entity.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("Customer not found"))
				return
			}
			renderError(logger, w, r, err)
			return
		}

		logger.Debug("message created", slog.String("message_id", message.ID))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(message))
	}
}
