package repository

import (
	"context"
	"fmt"

	"github.com/aeg58/crm-v2/entity"
)

// GetDashboardStats aggregates the overview counters in one round trip
// per shape: totals, today's message count, average lead score, and the
// sentiment and lead status breakdowns.
func (p *Postgres) GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	stats := &entity.DashboardStats{
		SentimentCounts: make(map[string]int),
		LeadStatusCount: make(map[string]int),
	}

	totals := `SELECT
		(SELECT COUNT(*) FROM customers),
		(SELECT COUNT(*) FROM messages),
		(SELECT COUNT(*) FROM leads),
		(SELECT COUNT(*) FROM messages WHERE created_at >= date_trunc('day', NOW())),
		(SELECT COALESCE(AVG(score), 0) FROM leads)`

	err := p.db.QueryRowContext(ctx, totals).Scan(
		&stats.TotalCustomers,
		&stats.TotalMessages,
		&stats.TotalLeads,
		&stats.MessagesToday,
		&stats.AverageScore,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres stats totals error: %w", err)
	}

	sentiments, err := p.db.QueryContext(ctx,
		`SELECT sentiment, COUNT(*) FROM messages WHERE sentiment IS NOT NULL GROUP BY sentiment`)
	if err != nil {
		return nil, fmt.Errorf("postgres stats sentiments error: %w", err)
	}
	defer sentiments.Close()

	for sentiments.Next() {
		var sentiment string
		var count int
		if err := sentiments.Scan(&sentiment, &count); err != nil {
			return nil, fmt.Errorf("postgres stats sentiments error: %w", err)
		}
		stats.SentimentCounts[sentiment] = count
	}
	if err := sentiments.Err(); err != nil {
		return nil, fmt.Errorf("postgres stats sentiments error: %w", err)
	}

	statuses, err := p.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("postgres stats leads error: %w", err)
	}
	defer statuses.Close()

	for statuses.Next() {
		var status string
		var count int
		if err := statuses.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("postgres stats leads error: %w", err)
		}
		stats.LeadStatusCount[status] = count
	}
	return stats, statuses.Err()
}
