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

const maintenanceColumns = `id, vehicle_id, start_date, end_date, type, cost, employee_id, odometer, description, created_on, updated_on`

type maintenanceRepository struct {
	db dbtx
}

func NewMaintenanceRepository(db dbtx) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func scanMaintenance(row interface{ Scan(dest ...any) error }) (*domain.MaintenanceWindow, error) {
	m := &domain.MaintenanceWindow{}
	var description sql.NullString
	err := row.Scan(&m.ID, &m.VehicleID, &m.StartDate, &m.EndDate, &m.Type, &m.Cost,
		&m.EmployeeID, &m.Odometer, &description, &m.CreatedOn, &m.UpdatedOn)
	if err != nil {
		return nil, err
	}
	m.Description = description.String
	return m, nil
}

func (r *maintenanceRepository) Create(ctx context.Context, m *domain.MaintenanceWindow) error {
	query := `INSERT INTO maintenance_windows (vehicle_id, start_date, end_date, type, cost, employee_id, odometer, description, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	m.CreatedOn = now
	m.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, m.VehicleID, m.StartDate, m.EndDate, m.Type, m.Cost,
		m.EmployeeID, m.Odometer, m.Description, now, now).Scan(&m.ID)
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int32) (*domain.MaintenanceWindow, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_windows WHERE id = $1`
	m, err := scanMaintenance(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("maintenance window", id)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *maintenanceRepository) Update(ctx context.Context, m *domain.MaintenanceWindow) error {
	query := `UPDATE maintenance_windows SET vehicle_id=$1, start_date=$2, end_date=$3, type=$4, cost=$5, employee_id=$6, odometer=$7, description=$8, updated_on=$9 WHERE id=$10`
	res, err := r.db.ExecContext(ctx, query, m.VehicleID, m.StartDate, m.EndDate, m.Type, m.Cost,
		m.EmployeeID, m.Odometer, m.Description, time.Now(), m.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("maintenance window", m.ID)
	}
	return nil
}

func (r *maintenanceRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM maintenance_windows WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("maintenance window", id)
	}
	return nil
}

func (r *maintenanceRepository) List(ctx context.Context, f repository.MaintenanceFilter) ([]domain.MaintenanceWindow, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_windows WHERE 1=1`
	var args []any
	if f.VehicleID != 0 {
		args = append(args, f.VehicleID)
		query += fmt.Sprintf(" AND vehicle_id = $%d", len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if f.EmployeeID != 0 {
		args = append(args, f.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	switch f.State {
	case "in_progress":
		args = append(args, time.Now())
		query += fmt.Sprintf(" AND start_date <= $%d AND (end_date IS NULL OR end_date > $%d)", len(args), len(args))
	case "finished":
		args = append(args, time.Now())
		query += fmt.Sprintf(" AND end_date IS NOT NULL AND end_date <= $%d", len(args))
	}
	query += " ORDER BY start_date DESC"

	return r.queryWindows(ctx, query, args...)
}

func (r *maintenanceRepository) ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.MaintenanceWindow, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_windows WHERE vehicle_id = $1 ORDER BY start_date DESC`
	return r.queryWindows(ctx, query, vehicleID)
}

func (r *maintenanceRepository) LatestByVehicle(ctx context.Context, vehicleID int32) (*domain.MaintenanceWindow, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_windows WHERE vehicle_id = $1 ORDER BY start_date DESC LIMIT 1`
	m, err := scanMaintenance(r.db.QueryRowContext(ctx, query, vehicleID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *maintenanceRepository) queryWindows(ctx context.Context, query string, args ...any) ([]domain.MaintenanceWindow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows []domain.MaintenanceWindow
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		windows = append(windows, *m)
	}
	return windows, rows.Err()
}
