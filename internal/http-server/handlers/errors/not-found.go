package errors

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aeg58/crm-v2/internal/lib/api/response"
)

func NotFound(_ *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Requested resource not found"))
	}
}
