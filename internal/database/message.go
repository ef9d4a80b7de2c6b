package repository

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/aeg58/crm-v2/entity"
)

const messageColumns = `id, customer_id, content, direction, platform,
	sentiment, lead_score, intent, tags, analysis_status, metadata, created_at, updated_at`

func scanMessage(row interface{ Scan(...any) error }) (*entity.Message, error) {
	var m entity.Message
	var tags pq.StringArray
	err := row.Scan(
		&m.ID, &m.CustomerID, &m.Content, &m.Direction, &m.Platform,
		&m.Sentiment, &m.LeadScore, &m.Intent, &tags, &m.AnalysisStatus,
		&m.Metadata, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Tags = tags
	if m.Tags == nil {
		m.Tags = []string{}
	}
	return &m, nil
}

func (p *Postgres) CreateMessage(ctx context.Context, message *entity.Message) error {
	metadata := message.Metadata
	if len(metadata) == 0 {
		metadata = []byte("{}")
	}

	query := `INSERT INTO messages (id, customer_id, content, direction, platform, tags, analysis_status, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := p.db.ExecContext(ctx, query,
		message.ID, message.CustomerID, message.Content, message.Direction, message.Platform,
		pq.Array(message.Tags), message.AnalysisStatus, []byte(metadata),
		message.CreatedAt, message.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres insert message error: %w", err)
	}
	return nil
}

func (p *Postgres) GetMessage(ctx context.Context, id string) (*entity.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	message, err := scanMessage(p.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, p.findError(err)
	}
	return message, nil
}

// ListMessages returns messages newest first, optionally scoped to one
// customer.
func (p *Postgres) ListMessages(ctx context.Context, customerID string, limit, offset int) ([]entity.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages
		WHERE ($1 = '' OR customer_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := p.db.QueryContext(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("postgres list messages error: %w", err)
	}
	defer rows.Close()

	messages := make([]entity.Message, 0)
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres scan message error: %w", err)
		}
		messages = append(messages, *message)
	}
	return messages, rows.Err()
}

func (p *Postgres) UpdateMessage(ctx context.Context, message *entity.Message) error {
	metadata := message.Metadata
	if len(metadata) == 0 {
		metadata = []byte("{}")
	}

	query := `UPDATE messages
		SET content = $2, metadata = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := p.db.QueryRowContext(ctx, query,
		message.ID, message.Content, []byte(metadata),
	).Scan(&message.UpdatedAt)
	if err != nil {
		return p.findError(err)
	}
	return nil
}

func (p *Postgres) DeleteMessage(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres delete message error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("postgres delete message error: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// UpdateMessageEnrichment writes the analysis result onto the message
// and flips its analysis status.
func (p *Postgres) UpdateMessageEnrichment(ctx context.Context, id string, analysis entity.Analysis, status string) (*entity.Message, error) {
	query := `UPDATE messages
		SET sentiment = $2, lead_score = $3, intent = $4, tags = $5, analysis_status = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + messageColumns

	message, err := scanMessage(p.db.QueryRowContext(ctx, query,
		id, analysis.Sentiment, analysis.Score, analysis.Intent,
		pq.Array(analysis.Tags), status,
	))
	if err != nil {
		return nil, p.findError(err)
	}
	return message, nil
}

// MarkMessageAnalysisFailed flips the analysis status to FAILED without
// touching the enrichment columns.
func (p *Postgres) MarkMessageAnalysisFailed(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE messages SET analysis_status = $2, updated_at = NOW() WHERE id = $1`,
		id, entity.AnalysisFailed,
	)
	if err != nil {
		return fmt.Errorf("postgres update message error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("postgres update message error: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
