package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

const chargeColumns = `id, rental_id, type, amount, description, recorded_at`

type chargeRepository struct {
	db dbtx
}

func NewChargeRepository(db dbtx) repository.ChargeRepository {
	return &chargeRepository{db: db}
}

func scanCharge(row interface{ Scan(dest ...any) error }) (*domain.Charge, error) {
	c := &domain.Charge{}
	var description sql.NullString
	err := row.Scan(&c.ID, &c.RentalID, &c.Type, &c.Amount, &description, &c.RecordedAt)
	if err != nil {
		return nil, err
	}
	c.Description = description.String
	return c, nil
}

func (r *chargeRepository) Create(ctx context.Context, c *domain.Charge) error {
	query := `INSERT INTO charges (rental_id, type, amount, description, recorded_at)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.RentalID, c.Type, c.Amount, c.Description, c.RecordedAt).Scan(&c.ID)
}

func (r *chargeRepository) GetByID(ctx context.Context, id int32) (*domain.Charge, error) {
	query := `SELECT ` + chargeColumns + ` FROM charges WHERE id = $1`
	c, err := scanCharge(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("charge", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *chargeRepository) Update(ctx context.Context, c *domain.Charge) error {
	query := `UPDATE charges SET rental_id=$1, type=$2, amount=$3, description=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, c.RentalID, c.Type, c.Amount, c.Description, c.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("charge", c.ID)
	}
	return nil
}

func (r *chargeRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM charges WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("charge", id)
	}
	return nil
}

func (r *chargeRepository) List(ctx context.Context, f repository.ChargeFilter) ([]domain.Charge, error) {
	query := `SELECT ` + chargeColumns + ` FROM charges WHERE 1=1`
	var args []any
	if f.RentalID != 0 {
		args = append(args, f.RentalID)
		query += fmt.Sprintf(" AND rental_id = $%d", len(args))
	}
	if len(f.Types) > 0 {
		placeholders := make([]string, len(f.Types))
		for i, t := range f.Types {
			args = append(args, t)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		query += " AND type IN (" + strings.Join(placeholders, ", ") + ")"
	}
	if f.AmountFrom != nil {
		args = append(args, *f.AmountFrom)
		query += fmt.Sprintf(" AND amount >= $%d", len(args))
	}
	if f.AmountTo != nil {
		args = append(args, *f.AmountTo)
		query += fmt.Sprintf(" AND amount <= $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		query += fmt.Sprintf(" AND recorded_at >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += fmt.Sprintf(" AND recorded_at <= $%d", len(args))
	}
	query += " ORDER BY recorded_at DESC"

	return r.queryCharges(ctx, query, args...)
}

func (r *chargeRepository) ListByRental(ctx context.Context, rentalID int32) ([]domain.Charge, error) {
	query := `SELECT ` + chargeColumns + ` FROM charges WHERE rental_id = $1 ORDER BY recorded_at DESC`
	return r.queryCharges(ctx, query, rentalID)
}

func (r *chargeRepository) CountByRental(ctx context.Context, rentalID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM charges WHERE rental_id = $1`, rentalID).Scan(&count)
	return count, err
}

func (r *chargeRepository) queryCharges(ctx context.Context, query string, args ...any) ([]domain.Charge, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []domain.Charge
	for rows.Next() {
		c, err := scanCharge(rows)
		if err != nil {
			return nil, err
		}
		charges = append(charges, *c)
	}
	return charges, rows.Err()
}
