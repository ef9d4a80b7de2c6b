package lead

import (
	"context"

	"github.com/aeg58/crm-v2/entity"
)

type Core interface {
	CreateLead(ctx context.Context, input *entity.Lead) (*entity.Lead, error)
	GetLead(ctx context.Context, id string) (*entity.Lead, error)
	ListLeads(ctx context.Context, status string, limit, offset int) ([]entity.Lead, error)
	UpdateLead(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error)
	DeleteLead(ctx context.Context, id string) error
}
