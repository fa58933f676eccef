package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"carrental-backend/internal/repository"

	_ "github.com/lib/pq"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so every repository can run
// against a plain connection or inside an open transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db    *sql.DB
	repos repository.Repositories
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:    db,
		repos: newRepositories(db),
	}
}

func newRepositories(h dbtx) repository.Repositories {
	return repository.Repositories{
		Clients:     NewClientRepository(h),
		Employees:   NewEmployeeRepository(h),
		Categories:  NewCategoryRepository(h),
		Vehicles:    NewVehicleRepository(h),
		Rentals:     NewRentalRepository(h),
		Maintenance: NewMaintenanceRepository(h),
		Charges:     NewChargeRepository(h),
	}
}

func (s *Store) Repos() *repository.Repositories {
	return &s.repos
}

// WithinTx runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise, so a
// partially applied unit of work is never left behind.
func (s *Store) WithinTx(ctx context.Context, fn func(r *repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	repos := newRepositories(tx)
	if err := fn(&repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	return tx.Commit()
}
