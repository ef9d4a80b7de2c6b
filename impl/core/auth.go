package core

import (
	"context"
	"fmt"

	"github.com/aeg58/crm-v2/entity"
)

func (c *Core) Register(ctx context.Context, name, email, password, role string) (*entity.User, string, error) {
	if c.authService == nil {
		return nil, "", fmt.Errorf("authService is not set")
	}
	return c.authService.Register(ctx, name, email, password, role)
}

func (c *Core) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if c.authService == nil {
		return nil, "", fmt.Errorf("authService is not set")
	}
	return c.authService.Login(ctx, email, password)
}

func (c *Core) AuthenticateByToken(token string) (*entity.UserAuth, error) {
	if c.authService == nil {
		return nil, fmt.Errorf("authService is not set")
	}
	return c.authService.AuthenticateByToken(token)
}
