package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/domain"
)

type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id int32) (*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, query string) ([]domain.Client, error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id int32) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Employee, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, c *domain.VehicleCategory) error
	GetByID(ctx context.Context, id int32) (*domain.VehicleCategory, error)
	Update(ctx context.Context, c *domain.VehicleCategory) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.VehicleCategory, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	// GetByIDForUpdate locks the vehicle row for the duration of the
	// surrounding transaction. It is the per-vehicle serialization boundary
	// that keeps concurrent availability checks from double-booking.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	UpdateStatus(ctx context.Context, id int32, status domain.VehicleStatus) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, status domain.VehicleStatus, categoryID int32) ([]domain.Vehicle, error)
}

// RentalFilter narrows rental listings. Zero values mean "no filter".
type RentalFilter struct {
	Statuses   []domain.RentalStatus
	ClientID   int32
	VehicleID  int32
	EmployeeID int32
	StartFrom  *time.Time
	StartTo    *time.Time
	EndFrom    *time.Time
	EndTo      *time.Time
}

type RentalRepository interface {
	Create(ctx context.Context, r *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	Update(ctx context.Context, r *domain.Rental) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, f RentalFilter) ([]domain.Rental, error)
	// ListByVehicle returns the vehicle's rentals whose status is in the
	// given set, for overlap checks. An empty set means all statuses.
	ListByVehicle(ctx context.Context, vehicleID int32, statuses []domain.RentalStatus) ([]domain.Rental, error)
	ListByClient(ctx context.Context, clientID int32, page, pageSize int32, from, to *time.Time) ([]domain.Rental, int32, error)
}

// MaintenanceFilter narrows maintenance listings. State is the derived
// in-progress/finished filter ("in_progress", "finished" or empty).
type MaintenanceFilter struct {
	VehicleID  int32
	Type       domain.MaintenanceType
	EmployeeID int32
	State      string
}

type MaintenanceRepository interface {
	Create(ctx context.Context, m *domain.MaintenanceWindow) error
	GetByID(ctx context.Context, id int32) (*domain.MaintenanceWindow, error)
	Update(ctx context.Context, m *domain.MaintenanceWindow) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, f MaintenanceFilter) ([]domain.MaintenanceWindow, error)
	ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.MaintenanceWindow, error)
	// LatestByVehicle returns the most recently started window for the
	// vehicle, or nil when it has none.
	LatestByVehicle(ctx context.Context, vehicleID int32) (*domain.MaintenanceWindow, error)
}

// ChargeFilter narrows charge listings.
type ChargeFilter struct {
	RentalID   int32
	Types      []domain.ChargeType
	AmountFrom *decimal.Decimal
	AmountTo   *decimal.Decimal
	From       *time.Time
	To         *time.Time
}

type ChargeRepository interface {
	Create(ctx context.Context, c *domain.Charge) error
	GetByID(ctx context.Context, id int32) (*domain.Charge, error)
	Update(ctx context.Context, c *domain.Charge) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, f ChargeFilter) ([]domain.Charge, error)
	ListByRental(ctx context.Context, rentalID int32) ([]domain.Charge, error)
	CountByRental(ctx context.Context, rentalID int32) (int32, error)
}

// Repositories bundles every repository bound to a single database handle,
// which may be a plain connection or an open transaction.
type Repositories struct {
	Clients     ClientRepository
	Employees   EmployeeRepository
	Categories  CategoryRepository
	Vehicles    VehicleRepository
	Rentals     RentalRepository
	Maintenance MaintenanceRepository
	Charges     ChargeRepository
}

// Store gives services repository access plus a transactional scope. Every
// multi-entity mutation (checkout, charge accrual, cascade cancellation)
// runs inside WithinTx so a failure rolls the whole unit of work back.
type Store interface {
	Repos() *Repositories
	WithinTx(ctx context.Context, fn func(r *Repositories) error) error
}
