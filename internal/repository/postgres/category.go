package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type categoryRepository struct {
	db dbtx
}

func NewCategoryRepository(db dbtx) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.VehicleCategory) error {
	query := `INSERT INTO vehicle_categories (name, description, daily_rate) VALUES ($1, $2, $3) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.Name, c.Description, c.DailyRate).Scan(&c.ID)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int32) (*domain.VehicleCategory, error) {
	c := &domain.VehicleCategory{}
	query := `SELECT id, name, description, daily_rate FROM vehicle_categories WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.DailyRate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("vehicle category", id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.VehicleCategory) error {
	query := `UPDATE vehicle_categories SET name=$1, description=$2, daily_rate=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Description, c.DailyRate, c.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("vehicle category", c.ID)
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicle_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("vehicle category", id)
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.VehicleCategory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, daily_rate FROM vehicle_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.VehicleCategory
	for rows.Next() {
		var c domain.VehicleCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.DailyRate); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
