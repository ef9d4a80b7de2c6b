package webhook

import (
	"crypto/hmac"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/aeg58/crm-v2/internal/lib/api/response"
	"github.com/aeg58/crm-v2/internal/lib/sl"
	"github.com/aeg58/crm-v2/internal/lib/validate"

	"github.com/aeg58/crm-v2/entity"
)

// SecretHeader carries the shared webhook secret.
const SecretHeader = "X-Webhook-Secret"

// Inbound accepts platform callback events. The secret check happens
// before anything touches the database; a mismatch has no side
// effects. On success the response carries the stored IDs while
// enrichment continues in the background.
func Inbound(log *slog.Logger, secret string, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.webhook")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("ingestion not available")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Ingestion not available"))
			return
		}

		if secret != "" && !hmac.Equal([]byte(r.Header.Get(SecretHeader)), []byte(secret)) {
			logger.Warn("webhook secret mismatch")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Invalid webhook secret"))
			return
		}

		var event entity.InboundEvent
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if err := validate.Struct(event); err != nil {
			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) {
				logger.Error("invalid inbound event", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validationErrs))
				return
			}
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		result, err := handler.HandleInboundMessage(r.Context(), &event)
		if err != nil {
			logger.Error("ingestion failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to process message"))
			return
		}

		logger.Debug("inbound event accepted",
			slog.String("customer_id", result.CustomerID),
			slog.String("message_id", result.MessageID),
		)
		render.JSON(w, r, response.Ok(result))
	}
}
