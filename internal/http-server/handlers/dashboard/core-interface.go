package dashboard

import (
	"context"

	"github.com/aeg58/crm-v2/entity"
)

type Core interface {
	GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error)
}
