package customer

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aeg58/crm-v2/entity"
	"github.com/aeg58/crm-v2/internal/lib/api/response"
	"github.com/aeg58/crm-v2/internal/lib/sl"
)

// renderError maps domain errors onto HTTP statuses. Unclassified
// errors become a generic 500 so internals never leak.
func renderError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Customer not found"))
	case errors.Is(err, entity.ErrDuplicate):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("Customer with this phone or email already exists"))
	case errors.Is(err, entity.ErrInvalidInput):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
	default:
		logger.Error("customer request failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal server error"))
	}
}
