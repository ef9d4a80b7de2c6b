package message

import (
	"context"
	"encoding/json"

	"github.com/aeg58/crm-v2/entity"
)

type Core interface {
	CreateMessage(ctx context.Context, customerID, content, direction, platform string, metadata json.RawMessage) (*entity.Message, error)
	GetMessage(ctx context.Context, id string) (*entity.Message, error)
	ListMessages(ctx context.Context, customerID string, limit, offset int) ([]entity.Message, error)
	UpdateMessage(ctx context.Context, id string, patch entity.MessagePatch) (*entity.Message, error)
	DeleteMessage(ctx context.Context, id string) error
}
