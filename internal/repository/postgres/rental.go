package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

const rentalColumns = `id, client_id, vehicle_id, employee_id, start_date, end_date, status, base_cost, total_cost, observations, initial_odometer, final_odometer, cancel_reason, cancelled_at, cancelled_by, created_on, updated_on`

type rentalRepository struct {
	db dbtx
}

func NewRentalRepository(db dbtx) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func scanRental(row interface{ Scan(dest ...any) error }) (*domain.Rental, error) {
	r := &domain.Rental{}
	var observations, cancelReason sql.NullString
	err := row.Scan(&r.ID, &r.ClientID, &r.VehicleID, &r.EmployeeID, &r.StartDate, &r.EndDate, &r.Status,
		&r.BaseCost, &r.TotalCost, &observations, &r.InitialOdometer, &r.FinalOdometer,
		&cancelReason, &r.CancelledAt, &r.CancelledBy, &r.CreatedOn, &r.UpdatedOn)
	if err != nil {
		return nil, err
	}
	r.Observations = observations.String
	r.CancelReason = cancelReason.String
	return r, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (client_id, vehicle_id, employee_id, start_date, end_date, status, base_cost, total_cost, observations, initial_odometer, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	rt.CreatedOn = now
	rt.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, rt.ClientID, rt.VehicleID, rt.EmployeeID, rt.StartDate, rt.EndDate,
		rt.Status, rt.BaseCost, rt.TotalCost, rt.Observations, rt.InitialOdometer, now, now).Scan(&rt.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("rental", id)
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET client_id=$1, vehicle_id=$2, employee_id=$3, start_date=$4, end_date=$5, status=$6,
	          base_cost=$7, total_cost=$8, observations=$9, initial_odometer=$10, final_odometer=$11,
	          cancel_reason=$12, cancelled_at=$13, cancelled_by=$14, updated_on=$15 WHERE id=$16`
	res, err := r.db.ExecContext(ctx, query, rt.ClientID, rt.VehicleID, rt.EmployeeID, rt.StartDate, rt.EndDate, rt.Status,
		rt.BaseCost, rt.TotalCost, rt.Observations, rt.InitialOdometer, rt.FinalOdometer,
		rt.CancelReason, rt.CancelledAt, rt.CancelledBy, time.Now(), rt.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("rental", rt.ID)
	}
	return nil
}

func (r *rentalRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("rental", id)
	}
	return nil
}

func (r *rentalRepository) List(ctx context.Context, f repository.RentalFilter) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE 1=1`
	var args []any

	if len(f.Statuses) > 0 {
		placeholders := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			args = append(args, st)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		query += " AND status IN (" + strings.Join(placeholders, ", ") + ")"
	}
	if f.ClientID != 0 {
		args = append(args, f.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if f.VehicleID != 0 {
		args = append(args, f.VehicleID)
		query += fmt.Sprintf(" AND vehicle_id = $%d", len(args))
	}
	if f.EmployeeID != 0 {
		args = append(args, f.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if f.StartFrom != nil {
		args = append(args, *f.StartFrom)
		query += fmt.Sprintf(" AND start_date >= $%d", len(args))
	}
	if f.StartTo != nil {
		args = append(args, *f.StartTo)
		query += fmt.Sprintf(" AND start_date <= $%d", len(args))
	}
	if f.EndFrom != nil {
		args = append(args, *f.EndFrom)
		query += fmt.Sprintf(" AND end_date >= $%d", len(args))
	}
	if f.EndTo != nil {
		args = append(args, *f.EndTo)
		query += fmt.Sprintf(" AND end_date <= $%d", len(args))
	}
	query += " ORDER BY start_date DESC"

	return r.queryRentals(ctx, query, args...)
}

func (r *rentalRepository) ListByVehicle(ctx context.Context, vehicleID int32, statuses []domain.RentalStatus) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE vehicle_id = $1`
	args := []any{vehicleID}
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, st := range statuses {
			args = append(args, st)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		query += " AND status IN (" + strings.Join(placeholders, ", ") + ")"
	}
	query += " ORDER BY start_date"
	return r.queryRentals(ctx, query, args...)
}

func (r *rentalRepository) ListByClient(ctx context.Context, clientID int32, page, pageSize int32, from, to *time.Time) ([]domain.Rental, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE client_id = $1`
	args := []any{clientID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND start_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND start_date <= $%d", len(args))
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY start_date DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rentals, err := r.queryRentals(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return rentals, count, nil
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...any) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}
