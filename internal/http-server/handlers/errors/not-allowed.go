package errors

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aeg58/crm-v2/internal/lib/api/response"
)

func NotAllowed(_ *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusMethodNotAllowed)
		render.JSON(w, r, response.Error("Method not allowed"))
	}
}
