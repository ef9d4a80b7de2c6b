package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aeg58/crm-v2/entity"
	"github.com/aeg58/crm-v2/internal/metrics"
)

// HandleInboundMessage runs the synchronous half of webhook ingestion:
// resolve the customer, insert the message, emit events. The returned
// result is what the webhook acknowledges; enrichment continues in a
// detached goroutine after this returns.
func (c *Core) HandleInboundMessage(ctx context.Context, event *entity.InboundEvent) (*entity.IngestResult, error) {
	platform := entity.ParsePlatform(event.Platform)
	direction := entity.ParseDirection(event.Message.Direction)

	customer, created, err := c.resolveCustomer(ctx, event, platform)
	if err != nil {
		return nil, err
	}

	message := entity.NewMessage(customer.ID, event.Message.Content, direction, platform, event.Message.Metadata)
	if err := c.repo.CreateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("storing message: %w", err)
	}

	metrics.RecordIngested(platform)
	c.log.With(
		slog.String("customer_id", customer.ID),
		slog.String("message_id", message.ID),
		slog.String("platform", platform),
	).Info("message ingested")

	if c.notifier != nil {
		if created {
			c.notifier.BroadcastCustomerNew(customer)
		}
		c.notifier.BroadcastMessageNew(message)
	}

	// Enrichment runs detached from the request context.
	go c.enrichMessage(context.Background(), customer, message)

	return &entity.IngestResult{
		CustomerID:  customer.ID,
		MessageID:   message.ID,
		NewCustomer: created,
	}, nil
}

// resolveCustomer finds the customer matching the event's phone or
// email, creating one when nothing matches. The insert can race with a
// concurrent webhook for the same contact; losing that race falls back
// to the row the winner created.
func (c *Core) resolveCustomer(ctx context.Context, event *entity.InboundEvent, platform string) (*entity.Customer, bool, error) {
	phone := strings.TrimSpace(event.Customer.Phone)
	email := strings.ToLower(strings.TrimSpace(event.Customer.Email))

	if phone != "" || email != "" {
		customer, err := c.repo.FindCustomerByContact(ctx, phone, email)
		if err == nil {
			return customer, false, nil
		}
		if !errors.Is(err, entity.ErrNotFound) {
			return nil, false, fmt.Errorf("resolving customer: %w", err)
		}
	}

	customer := entity.NewCustomer(event.Customer.Name, email, phone, entity.SourceFromPlatform(platform))
	err := c.repo.CreateCustomer(ctx, customer)
	if err == nil {
		return customer, true, nil
	}

	if errors.Is(err, entity.ErrDuplicate) {
		existing, findErr := c.repo.FindCustomerByContact(ctx, phone, email)
		if findErr == nil {
			return existing, false, nil
		}
	}
	return nil, false, fmt.Errorf("creating customer: %w", err)
}

// HandleTestMessage ingests a canned inbound event so the pipeline can
// be exercised without a real platform callback.
func (c *Core) HandleTestMessage(ctx context.Context) (*entity.IngestResult, error) {
	event := &entity.InboundEvent{
		Platform: entity.PlatformWhatsApp,
		Customer: entity.InboundCustomer{
			Name:  "Test Customer",
			Phone: "+5511999990000",
			Email: "test.customer@example.com",
		},
		Message: entity.InboundMessage{
			Content:   "Hello, I would like to know more about your enterprise plan pricing.",
			Direction: entity.DirectionInbound,
		},
	}
	return c.HandleInboundMessage(ctx, event)
}
