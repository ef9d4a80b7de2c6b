package cont

import (
	"context"

	"github.com/aeg58/crm-v2/entity"
)

type contextKey string

const userKey contextKey = "user"

// PutUser stores the authenticated user in the request context.
func PutUser(ctx context.Context, user *entity.UserAuth) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser returns the authenticated user, or nil when the request
// never passed through the authenticate middleware.
func GetUser(ctx context.Context) *entity.UserAuth {
	user, ok := ctx.Value(userKey).(*entity.UserAuth)
	if !ok {
		return nil
	}
	return user
}
