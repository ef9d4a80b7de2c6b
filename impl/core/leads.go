package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/aeg58/crm-v2/entity"
)

// CreateLead persists a manually entered lead for an existing
// customer. Status defaults to NEW; the score is clamped.
func (c *Core) CreateLead(ctx context.Context, input *entity.Lead) (*entity.Lead, error) {
	customer, err := c.repo.GetCustomer(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = "Manual"
	}

	lead := entity.NewLead(customer.ID, input.Score, source, input.Notes)
	if input.Status != "" {
		status, ok := entity.ParseLeadStatus(input.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", entity.ErrInvalidInput, input.Status)
		}
		lead.Status = status
	}

	if err := c.repo.CreateLead(ctx, lead); err != nil {
		return nil, err
	}

	if c.notifier != nil {
		c.notifier.BroadcastLeadNew(lead)
	}
	return lead, nil
}

func (c *Core) GetLead(ctx context.Context, id string) (*entity.Lead, error) {
	return c.repo.GetLead(ctx, id)
}

// ListLeads returns leads, optionally filtered by a canonical status.
func (c *Core) ListLeads(ctx context.Context, status string, limit, offset int) ([]entity.Lead, error) {
	canonical := ""
	if status != "" {
		parsed, ok := entity.ParseLeadStatus(status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", entity.ErrInvalidInput, status)
		}
		canonical = parsed
	}
	if offset < 0 {
		offset = 0
	}
	return c.repo.ListLeads(ctx, canonical, normalizeLimit(limit), offset)
}

// UpdateLead applies a partial update and announces the change.
func (c *Core) UpdateLead(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	lead, err := c.repo.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Score != nil {
		lead.Score = entity.ClampScore(*patch.Score)
	}
	if patch.Status != nil {
		status, ok := entity.ParseLeadStatus(*patch.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", entity.ErrInvalidInput, *patch.Status)
		}
		lead.Status = status
	}
	if patch.Source != nil {
		lead.Source = strings.TrimSpace(*patch.Source)
	}
	if patch.Notes != nil {
		lead.Notes = *patch.Notes
	}

	if err := c.repo.UpdateLead(ctx, lead); err != nil {
		return nil, err
	}

	if c.notifier != nil {
		c.notifier.BroadcastLeadUpdate(lead)
	}
	return lead, nil
}

func (c *Core) DeleteLead(ctx context.Context, id string) error {
	return c.repo.DeleteLead(ctx, id)
}
