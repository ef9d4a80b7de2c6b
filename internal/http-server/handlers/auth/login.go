package auth

import (
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
	authservice "github.com/aeg58/crm-v2/internal/service/auth"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Login(log *slog.Logger, handler Core) http.HandlerFunc {
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

		var req LoginRequest
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

		user, token, err := handler.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, authservice.ErrInvalidCredentials) {
				logger.Warn("login rejected", slog.String("email", req.Email))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Invalid credentials"))
				return
			}
			logger.Error("failed to log user in", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Internal server error"))
			return
		}

		render.JSON(w, r, response.Ok(TokenResponse{Token: token, User: user}))
	}
}
