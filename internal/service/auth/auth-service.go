package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/aeg58/crm-v2/entity"
	"github.com/aeg58/crm-v2/internal/config"
	"github.com/aeg58/crm-v2/internal/lib/sl"
)

// ErrInvalidCredentials covers both unknown emails and wrong
// passwords, so login failures never reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrInvalidToken = errors.New("invalid token")

type Repository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
}

type Service struct {
	repository Repository
	secret     []byte
	ttl        time.Duration
	log        *slog.Logger
}

func NewAuthService(conf *config.Config, logger *slog.Logger) *Service {
	return &Service{
		repository: nil,
		secret:     []byte(conf.Auth.Secret),
		ttl:        time.Duration(conf.Auth.TokenTTLHours) * time.Hour,
		log:        logger.With(sl.Module("auth-service")),
	}
}

func (s *Service) SetRepository(repository Repository) {
	s.repository = repository
}

// Register creates a user with a bcrypt-hashed password and returns it
// together with a fresh token. Duplicate emails surface as the
// repository's duplicate error.
func (s *Service) Register(ctx context.Context, name, email, password, role string) (*entity.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	user := entity.NewUser(name, email, string(hash), entity.ParseRole(role))
	if err := s.repository.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("user registered", slog.String("email", user.Email))
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := s.repository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// AuthenticateByToken validates a signed token and returns the
// identity baked into its claims. No database round trip.
func (s *Service) AuthenticateByToken(token string) (*entity.UserAuth, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &entity.UserAuth{
		UserID: userID,
		Email:  email,
		Role:   entity.ParseRole(role),
	}, nil
}

func (s *Service) generateToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return token, nil
}
