package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/aeg58/crm-v2/entity"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// CreateCustomer persists a manually entered customer and announces
// it. Source defaults to MANUAL, status to ACTIVE.
func (c *Core) CreateCustomer(ctx context.Context, input *entity.Customer) (*entity.Customer, error) {
	source := entity.SourceManual
	if input.Source != "" {
		parsed, ok := entity.ParseCustomerSource(input.Source)
		if !ok {
			return nil, fmt.Errorf("%w: unknown source %q", entity.ErrInvalidInput, input.Source)
		}
		source = parsed
	}

	customer := entity.NewCustomer(
		strings.TrimSpace(input.Name),
		strings.ToLower(strings.TrimSpace(input.Email)),
		strings.TrimSpace(input.Phone),
		source,
	)
	customer.Company = strings.TrimSpace(input.Company)
	customer.Notes = input.Notes
	if len(input.Tags) > 0 {
		customer.Tags = input.Tags
	}
	if input.Status != "" {
		status, ok := entity.ParseCustomerStatus(input.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", entity.ErrInvalidInput, input.Status)
		}
		customer.Status = status
	}

	if err := c.repo.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}

	if c.notifier != nil {
		c.notifier.BroadcastCustomerNew(customer)
	}
	return customer, nil
}

func (c *Core) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	return c.repo.GetCustomer(ctx, id)
}

func (c *Core) ListCustomers(ctx context.Context, limit, offset int) ([]entity.Customer, error) {
	if offset < 0 {
		offset = 0
	}
	return c.repo.ListCustomers(ctx, normalizeLimit(limit), offset)
}

// UpdateCustomer applies a partial update. Enum fields are
// canonicalized and rejected when unrecognized.
func (c *Core) UpdateCustomer(ctx context.Context, id string, patch entity.CustomerPatch) (*entity.Customer, error) {
	customer, err := c.repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", entity.ErrInvalidInput)
		}
		customer.Name = name
	}
	if patch.Email != nil {
		customer.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if patch.Phone != nil {
		customer.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Company != nil {
		customer.Company = strings.TrimSpace(*patch.Company)
	}
	if patch.Source != nil {
		source, ok := entity.ParseCustomerSource(*patch.Source)
		if !ok {
			return nil, fmt.Errorf("%w: unknown source %q", entity.ErrInvalidInput, *patch.Source)
		}
		customer.Source = source
	}
	if patch.Status != nil {
		status, ok := entity.ParseCustomerStatus(*patch.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", entity.ErrInvalidInput, *patch.Status)
		}
		customer.Status = status
	}
	if patch.Tags != nil {
		customer.Tags = patch.Tags
	}
	if patch.Notes != nil {
		customer.Notes = *patch.Notes
	}

	if err := c.repo.UpdateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (c *Core) DeleteCustomer(ctx context.Context, id string) error {
	return c.repo.DeleteCustomer(ctx, id)
}
