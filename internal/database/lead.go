package repository

import (
	"context"
	"fmt"

	"github.com/aeg58/crm-v2/entity"
)

const leadColumns = `id, customer_id, score, status, COALESCE(source, ''), COALESCE(notes, ''), created_at, updated_at`

func scanLead(row interface{ Scan(...any) error }) (*entity.Lead, error) {
	var l entity.Lead
	err := row.Scan(
		&l.ID, &l.CustomerID, &l.Score, &l.Status,
		&l.Source, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (p *Postgres) CreateLead(ctx context.Context, lead *entity.Lead) error {
	query := `INSERT INTO leads (id, customer_id, score, status, source, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8)`

	_, err := p.db.ExecContext(ctx, query,
		lead.ID, lead.CustomerID, lead.Score, lead.Status,
		lead.Source, lead.Notes, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres insert lead error: %w", err)
	}
	return nil
}

func (p *Postgres) GetLead(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(p.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, p.findError(err)
	}
	return lead, nil
}

// FindActiveLeadByCustomer returns the customer's oldest lead that is
// still open, skipping CLOSED_WON and CLOSED_LOST.
func (p *Postgres) FindActiveLeadByCustomer(ctx context.Context, customerID string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE customer_id = $1 AND status NOT IN ($2, $3)
		ORDER BY created_at ASC
		LIMIT 1`

	lead, err := scanLead(p.db.QueryRowContext(ctx, query, customerID, entity.LeadClosedWon, entity.LeadClosedLost))
	if err != nil {
		return nil, p.findError(err)
	}
	return lead, nil
}

// ListLeads returns leads newest first, optionally filtered by status.
func (p *Postgres) ListLeads(ctx context.Context, status string, limit, offset int) ([]entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := p.db.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("postgres list leads error: %w", err)
	}
	defer rows.Close()

	leads := make([]entity.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres scan lead error: %w", err)
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

func (p *Postgres) UpdateLead(ctx context.Context, lead *entity.Lead) error {
	query := `UPDATE leads
		SET score = $2, status = $3, source = NULLIF($4, ''), notes = NULLIF($5, ''), updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := p.db.QueryRowContext(ctx, query,
		lead.ID, lead.Score, lead.Status, lead.Source, lead.Notes,
	).Scan(&lead.UpdatedAt)
	if err != nil {
		return p.findError(err)
	}
	return nil
}

func (p *Postgres) DeleteLead(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres delete lead error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("postgres delete lead error: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// RaiseLeadScore lifts the lead score to at least score and appends the
// note, in one statement so concurrent enrichments can only raise it.
func (p *Postgres) RaiseLeadScore(ctx context.Context, id string, score int, note string) (*entity.Lead, error) {
	query := `UPDATE leads
		SET score = GREATEST(score, $2),
			notes = CASE WHEN notes IS NULL OR notes = '' THEN $3 ELSE notes || E'\n' || $3 END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leadColumns

	lead, err := scanLead(p.db.QueryRowContext(ctx, query, id, score, note))
	if err != nil {
		return nil, p.findError(err)
	}
	return lead, nil
}
