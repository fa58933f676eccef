package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

const clientColumns = `id, first_name, last_name, document, phone, email, address, created_on, updated_on`

type clientRepository struct {
	db dbtx
}

func NewClientRepository(db dbtx) repository.ClientRepository {
	return &clientRepository{db: db}
}

func scanClient(row interface{ Scan(dest ...any) error }) (*domain.Client, error) {
	c := &domain.Client{}
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Document, &c.Phone, &c.Email, &c.Address, &c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO clients (first_name, last_name, document, phone, email, address, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	c.CreatedOn = now
	c.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, c.FirstName, c.LastName, c.Document, c.Phone, c.Email, c.Address, now, now).Scan(&c.ID)
}

func (r *clientRepository) GetByID(ctx context.Context, id int32) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("client", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	query := `UPDATE clients SET first_name=$1, last_name=$2, document=$3, phone=$4, email=$5, address=$6, updated_on=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, c.FirstName, c.LastName, c.Document, c.Phone, c.Email, c.Address, time.Now(), c.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("client", c.ID)
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("client", id)
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context, query string) ([]domain.Client, error) {
	sqlQuery := `SELECT ` + clientColumns + ` FROM clients`
	var args []any
	if query != "" {
		sqlQuery += ` WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR document ILIKE $1`
		args = append(args, "%"+query+"%")
	}
	sqlQuery += " ORDER BY last_name, first_name"

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}
