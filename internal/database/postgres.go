package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/aeg58/crm-v2/entity"
	"github.com/aeg58/crm-v2/internal/config"
	"github.com/aeg58/crm-v2/internal/lib/sl"
)

//go:embed scripts/initdb.sql
var schemaFS embed.FS

type Postgres struct {
	db  *sql.DB
	log *slog.Logger
}

func NewPostgres(conf *config.Config, logger *slog.Logger) (*Postgres, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		conf.Postgres.Host,
		conf.Postgres.Port,
		conf.Postgres.User,
		conf.Postgres.Password,
		conf.Postgres.Database,
		conf.Postgres.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open error: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("postgres ping error: %w", err)
	}

	p := &Postgres{
		db:  db,
		log: logger.With(sl.Module("postgres")),
	}

	if err := p.bootstrap(context.Background()); err != nil {
		return nil, err
	}

	return p, nil
}

// bootstrap applies the embedded schema. Every statement is IF NOT
// EXISTS, so running it against an initialized database is a no-op.
func (p *Postgres) bootstrap(ctx context.Context) error {
	script, err := schemaFS.ReadFile("scripts/initdb.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bootstrap tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, string(script)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("exec schema: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}

	p.log.Debug("schema bootstrapped")
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) findError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ErrNotFound
	}
	return fmt.Errorf("postgres query error: %w", err)
}

func isDuplicate(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
