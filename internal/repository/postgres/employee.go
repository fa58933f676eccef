package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

const employeeColumns = `id, first_name, last_name, email, password_hash, role, active, created_on, updated_on`

type employeeRepository struct {
	db dbtx
}

func NewEmployeeRepository(db dbtx) repository.EmployeeRepository {
	return &employeeRepository{db: db}
}

func scanEmployee(row interface{ Scan(dest ...any) error }) (*domain.Employee, error) {
	e := &domain.Employee{}
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.PasswordHash, &e.Role, &e.Active, &e.CreatedOn, &e.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *employeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (first_name, last_name, email, password_hash, role, active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	e.CreatedOn = now
	e.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, e.FirstName, e.LastName, e.Email, e.PasswordHash, e.Role, e.Active, now, now).Scan(&e.ID)
}

func (r *employeeRepository) GetByID(ctx context.Context, id int32) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	e, err := scanEmployee(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("employee", id)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1`
	e, err := scanEmployee(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("employee", 0)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *employeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	query := `UPDATE employees SET first_name=$1, last_name=$2, email=$3, password_hash=$4, role=$5, active=$6, updated_on=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, e.FirstName, e.LastName, e.Email, e.PasswordHash, e.Role, e.Active, time.Now(), e.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("employee", e.ID)
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFound("employee", id)
	}
	return nil
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}
