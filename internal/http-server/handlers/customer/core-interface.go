package customer

import (
	"context"

	"github.com/aeg58/crm-v2/entity"
)

type Core interface {
	CreateCustomer(ctx context.Context, input *entity.Customer) (*entity.Customer, error)
	GetCustomer(ctx context.Context, id string) (*entity.Customer, error)
	ListCustomers(ctx context.Context, limit, offset int) ([]entity.Customer, error)
	UpdateCustomer(ctx context.Context, id string, patch entity.CustomerPatch) (*entity.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}
