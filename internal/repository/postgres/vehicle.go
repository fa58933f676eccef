package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

const vehicleColumns = `id, plate, brand, model, year, category_id, status, odometer, last_maintenance_date, created_on, updated_on`

type vehicleRepository struct {
	db dbtx
}

func NewVehicleRepository(db dbtx) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func scanVehicle(row interface{ Scan(dest ...any) error }) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := row.Scan(&v.ID, &v.Plate, &v.Brand, &v.Model, &v.Year, &v.CategoryID, &v.Status,
		&v.Odometer, &v.LastMaintenanceDate, &v.CreatedOn, &v.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (plate, brand, model, year, category_id, status, odometer, last_maintenance_date, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	v.CreatedOn = now
	v.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, v.Plate, v.Brand, v.Model, v.Year, v.CategoryID, v.Status,
		v.Odometer, v.LastMaintenanceDate, now, now).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return r.get(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
}

func (r *vehicleRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return r.get(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1 FOR UPDATE`, id)
}

func (r *vehicleRepository) get(ctx context.Context, query string, id int32) (*domain.Vehicle, error) {
	v, err := scanVehicle(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("vehicle", id)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET plate=$1, brand=$2, model=$3, year=$4, category_id=$5, status=$6, odometer=$7, last_maintenance_date=$8, updated_on=$9 WHERE id=$10`
	res, err := r.db.ExecContext(ctx, query, v.Plate, v.Brand, v.Model, v.Year, v.CategoryID, v.Status,
		v.Odometer, v.LastMaintenanceDate, time.Now(), v.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("vehicle", v.ID)
	}
	return nil
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id int32, status domain.VehicleStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE vehicles SET status=$1, updated_on=$2 WHERE id=$3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("vehicle", id)
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("vehicle", id)
	}
	return nil
}

func (r *vehicleRepository) List(ctx context.Context, status domain.VehicleStatus, categoryID int32) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE 1=1`
	var args []any
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if categoryID != 0 {
		args = append(args, categoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	query += " ORDER BY plate"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}
