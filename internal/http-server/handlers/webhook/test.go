package webhook

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/aeg58/crm-v2/internal/lib/api/response"
	"github.com/aeg58/crm-v2/internal/lib/sl"
)

// Test ingests a canned event through the full pipeline, secret check
// skipped. Useful for verifying the deployment end to end.
func Test(log *slog.Logger, handler Core) http.HandlerFunc {
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

		result, err := handler.HandleTestMessage(r.Context())
		if err != nil {
			logger.Error("test ingestion failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to process test message"))
			return
		}

		logger.Debug("test event accepted", slog.String("message_id", result.MessageID))
		render.JSON(w, r, response.Ok(result))
	}
}
