package repository

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/aeg58/crm-v2/entity"
)

const customerColumns = `id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(company, ''),
	source, status, tags, COALESCE(notes, ''), created_at, updated_at`

func scanCustomer(row interface{ Scan(...any) error }) (*entity.Customer, error) {
	var c entity.Customer
	var tags pq.StringArray
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company,
		&c.Source, &c.Status, &tags, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Tags = tags
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return &c, nil
}

func (p *Postgres) CreateCustomer(ctx context.Context, customer *entity.Customer) error {
	query := `INSERT INTO customers (id, name, email, phone, company, source, status, tags, notes, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, NULLIF($9, ''), $10, $11)`

	_, err := p.db.ExecContext(ctx, query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.Company,
		customer.Source, customer.Status, pq.Array(customer.Tags), customer.Notes,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isDuplicate(err) {
			return entity.ErrDuplicate
		}
		return fmt.Errorf("postgres insert customer error: %w", err)
	}
	return nil
}

func (p *Postgres) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	customer, err := scanCustomer(p.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, p.findError(err)
	}
	return customer, nil
}

// FindCustomerByContact looks a customer up by phone first, then by
// email. Blank identifiers never match.
func (p *Postgres) FindCustomerByContact(ctx context.Context, phone, email string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE (phone = $1 AND $1 <> '') OR (email = $2 AND $2 <> '')
		ORDER BY CASE WHEN phone = $1 THEN 0 ELSE 1 END
		LIMIT 1`

	customer, err := scanCustomer(p.db.QueryRowContext(ctx, query, phone, email))
	if err != nil {
		return nil, p.findError(err)
	}
	return customer, nil
}

func (p *Postgres) ListCustomers(ctx context.Context, limit, offset int) ([]entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := p.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("postgres list customers error: %w", err)
	}
	defer rows.Close()

	customers := make([]entity.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres scan customer error: %w", err)
		}
		customers = append(customers, *customer)
	}
	return customers, rows.Err()
}

func (p *Postgres) UpdateCustomer(ctx context.Context, customer *entity.Customer) error {
	query := `UPDATE customers
		SET name = $2, email = NULLIF($3, ''), phone = NULLIF($4, ''), company = NULLIF($5, ''),
			source = $6, status = $7, tags = $8, notes = NULLIF($9, ''), updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := p.db.QueryRowContext(ctx, query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.Company,
		customer.Source, customer.Status, pq.Array(customer.Tags), customer.Notes,
	).Scan(&customer.UpdatedAt)
	if err != nil {
		if isDuplicate(err) {
			return entity.ErrDuplicate
		}
		return p.findError(err)
	}
	return nil
}

// DeleteCustomer removes the customer row. Messages and leads cascade.
func (p *Postgres) DeleteCustomer(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres delete customer error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("postgres delete customer error: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
