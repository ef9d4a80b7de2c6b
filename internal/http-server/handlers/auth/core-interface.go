package auth

import (
	"context"

	"github.com/aeg58/crm-v2/entity"
)

type Core interface {
	Register(ctx context.Context, name, email, password, role string) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
}
