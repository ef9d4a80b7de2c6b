package auth

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

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"`
}

// TokenResponse is the payload of both register and login.
type TokenResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

func Register(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.auth")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if handler == nil {
			logger.Error("auth service not available")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Auth service not available"))
			return
		}

		var req RegisterRequest
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

		user, token, err := handler.Register(r.Context(), req.Name, req.Email, req.Password, req.Role)
		if err != nil {
			if errors.Is(err, entity.ErrDuplicate) {
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("User with this email already exists"))
				return
			}
			logger.Error("failed to register user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Internal server error"))
			return
		}

		logger.Info("user registered", slog.String("email", user.Email))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(TokenResponse{Token: token, User: user}))
	}
}
