package repository

import (
	"context"
	"fmt"

	"github.com/aeg58/crm-v2/entity"
)

const userColumns = `id, name, email, password_hash, role, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (p *Postgres) CreateUser(ctx context.Context, user *entity.User) error {
	query := `INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := p.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isDuplicate(err) {
			return entity.ErrDuplicate
		}
		return fmt.Errorf("postgres insert user error: %w", err)
	}
	return nil
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(p.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, p.findError(err)
	}
	return user, nil
}

func (p *Postgres) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(p.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, p.findError(err)
	}
	return user, nil
}
