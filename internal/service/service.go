package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

// CreateRentalInput carries the fields needed to book a vehicle.
type CreateRentalInput struct {
	ClientID        int32
	VehicleID       int32
	EmployeeID      int32
	StartDate       time.Time
	EndDate         time.Time
	BaseCost        decimal.Decimal
	Observations    string
	InitialOdometer *int32
}

// UpdateRentalInput carries a partial rental edit; nil fields are untouched.
type UpdateRentalInput struct {
	ClientID     *int32
	VehicleID    *int32
	EmployeeID   *int32
	StartDate    *time.Time
	EndDate      *time.Time
	BaseCost     *decimal.Decimal
	Observations *string
}

// MaintenanceInput carries the fields of a staff-created maintenance window.
type MaintenanceInput struct {
	VehicleID   int32
	StartDate   time.Time
	EndDate     *time.Time
	Type        domain.MaintenanceType
	Cost        decimal.Decimal
	EmployeeID  *int32
	Odometer    *int32
	Description string
}

// UpdateMaintenanceInput is a partial maintenance edit; nil fields are untouched.
type UpdateMaintenanceInput struct {
	VehicleID   *int32
	StartDate   *time.Time
	EndDate     *time.Time
	ClearEnd    bool
	Type        *domain.MaintenanceType
	Cost        *decimal.Decimal
	EmployeeID  *int32
	Description *string
}

// ChargeInput carries the fields of a new penalty or damage record.
type ChargeInput struct {
	RentalID    int32
	Type        domain.ChargeType
	Amount      decimal.Decimal
	Description string
}

// UpdateChargeInput is a partial charge edit; nil fields are untouched.
// RentalID re-points the charge to another rental, moving its amount with it.
type UpdateChargeInput struct {
	RentalID    *int32
	Type        *domain.ChargeType
	Amount      *decimal.Decimal
	Description *string
}

type RentalService interface {
	Create(ctx context.Context, in CreateRentalInput) (*domain.Rental, error)
	Update(ctx context.Context, id int32, in UpdateRentalInput) (*domain.Rental, error)
	Get(ctx context.Context, id int32) (*domain.Rental, error)
	List(ctx context.Context, f repository.RentalFilter) ([]domain.Rental, error)
	Delete(ctx context.Context, id int32) error
	Checkout(ctx context.Context, id int32, finalOdometer int32, employeeID int32, remarks string) (*domain.CheckoutResult, error)
	Cancel(ctx context.Context, id int32, reason string, employeeID int32) (*domain.CancelResult, error)
	CheckAvailability(ctx context.Context, vehicleID int32, start, end time.Time, excludeRentalID int32) (*domain.AvailabilityResult, error)
	SweepLifecycle(ctx context.Context) (int32, error)
}

type MaintenanceService interface {
	Create(ctx context.Context, in MaintenanceInput) (*domain.MaintenanceWindow, error)
	Update(ctx context.Context, id int32, in UpdateMaintenanceInput) (*domain.MaintenanceWindow, error)
	Get(ctx context.Context, id int32) (*domain.MaintenanceWindow, error)
	List(ctx context.Context, f repository.MaintenanceFilter) ([]domain.MaintenanceWindow, error)
	ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.MaintenanceWindow, error)
	Delete(ctx context.Context, id int32) error
}

type ChargeService interface {
	Add(ctx context.Context, in ChargeInput) (*domain.Charge, error)
	Update(ctx context.Context, id int32, in UpdateChargeInput) (*domain.Charge, error)
	Get(ctx context.Context, id int32) (*domain.Charge, error)
	List(ctx context.Context, f repository.ChargeFilter) ([]domain.Charge, error)
	ListByRental(ctx context.Context, rentalID int32) ([]domain.Charge, error)
	Delete(ctx context.Context, id int32) error
}

type VehicleService interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	Update(ctx context.Context, v *domain.Vehicle) error
	Get(ctx context.Context, id int32) (*domain.Vehicle, error)
	List(ctx context.Context, status domain.VehicleStatus, categoryID int32) ([]domain.Vehicle, error)
	Delete(ctx context.Context, id int32) error
}

type ClientService interface {
	Create(ctx context.Context, c *domain.Client) error
	Update(ctx context.Context, c *domain.Client) error
	Get(ctx context.Context, id int32) (*domain.Client, error)
	List(ctx context.Context, query string) ([]domain.Client, error)
	Delete(ctx context.Context, id int32) error
	RentalHistory(ctx context.Context, clientID int32, page, pageSize int32, from, to *time.Time) ([]domain.Rental, int32, error)
}

type EmployeeService interface {
	Create(ctx context.Context, e *domain.Employee, password string) error
	Update(ctx context.Context, e *domain.Employee) error
	Get(ctx context.Context, id int32) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Delete(ctx context.Context, id int32) error
}

type CategoryService interface {
	Create(ctx context.Context, c *domain.VehicleCategory) error
	Update(ctx context.Context, c *domain.VehicleCategory) error
	Get(ctx context.Context, id int32) (*domain.VehicleCategory, error)
	List(ctx context.Context) ([]domain.VehicleCategory, error)
	Delete(ctx context.Context, id int32) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Employee, error)
}
