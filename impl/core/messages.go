package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aeg58/crm-v2/entity"
)

// CreateMessage records a manually entered message for an existing
// customer and runs the same enrichment continuation as ingestion.
func (c *Core) CreateMessage(ctx context.Context, customerID, content, direction, platform string, metadata json.RawMessage) (*entity.Message, error) {
	customer, err := c.repo.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	message := entity.NewMessage(
		customer.ID,
		content,
		entity.ParseDirection(direction),
		entity.ParsePlatform(platform),
		metadata,
	)
	if message.Platform == entity.PlatformUnknown && platform == "" {
		message.Platform = entity.PlatformManual
	}

	if err := c.repo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if c.notifier != nil {
		c.notifier.BroadcastMessageNew(message)
	}

	go c.enrichMessage(context.Background(), customer, message)

	return message, nil
}

func (c *Core) GetMessage(ctx context.Context, id string) (*entity.Message, error) {
	return c.repo.GetMessage(ctx, id)
}

// UpdateMessage applies a manual edit. Enrichment fields are not
// touched here; only the analysis pipeline writes those.
func (c *Core) UpdateMessage(ctx context.Context, id string, patch entity.MessagePatch) (*entity.Message, error) {
	message, err := c.repo.GetMessage(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Content != nil {
		content := strings.TrimSpace(*patch.Content)
		if content == "" {
			return nil, fmt.Errorf("%w: content cannot be empty", entity.ErrInvalidInput)
		}
		message.Content = content
	}
	if patch.Metadata != nil {
		message.Metadata = patch.Metadata
	}

	if err := c.repo.UpdateMessage(ctx, message); err != nil {
		return nil, err
	}

	if c.notifier != nil {
		c.notifier.BroadcastMessageUpdated(message)
	}
	return message, nil
}

func (c *Core) DeleteMessage(ctx context.Context, id string) error {
	return c.repo.DeleteMessage(ctx, id)
}

func (c *Core) ListMessages(ctx context.Context, customerID string, limit, offset int) ([]entity.Message, error) {
	if offset < 0 {
		offset = 0
	}
	return c.repo.ListMessages(ctx, customerID, normalizeLimit(limit), offset)
}
