package core

import (
	"context"

	"github.com/aeg58/crm-v2/entity"
)

func (c *Core) GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	return c.repo.GetDashboardStats(ctx)
}
