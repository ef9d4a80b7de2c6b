package webhook

import (
	"context"

	"github.com/aeg58/crm-v2/entity"
)

type Core interface {
	HandleInboundMessage(ctx context.Context, event *entity.InboundEvent) (*entity.IngestResult, error)
	HandleTestMessage(ctx context.Context) (*entity.IngestResult, error)
}
