package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	UserRole  = "USER"
	AdminRole = "ADMIN"
)

// User is an authentication principal. It is not part of the ingestion
// workflow; it only gates the dashboard API.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewUser(name, email, passwordHash, role string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == AdminRole
}

// ParseRole returns the canonical role, defaulting to USER.
func ParseRole(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), AdminRole) {
		return AdminRole
	}
	return UserRole
}

// UserAuth is the authenticated principal attached to a request after
// token validation.
type UserAuth struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
