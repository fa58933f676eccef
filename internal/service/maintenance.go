package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

// checkoutOutcome is what the maintenance trigger decided for a vehicle.
type checkoutOutcome struct {
	requiresMaintenance bool
	vehicleStatus       domain.VehicleStatus
	windowID            *int32
}

// syncVehicleAfterCheckout advances the vehicle's odometer and decides
// whether the accumulated distance since the last maintenance warrants a new
// preventive cycle. The baseline is the odometer recorded on the most recent
// maintenance window, or zero when the vehicle has never been serviced, so
// the distance does not drift across rentals between services.
func syncVehicleAfterCheckout(ctx context.Context, r *repository.Repositories, vehicle *domain.Vehicle, finalOdometer, employeeID int32) (*checkoutOutcome, error) {
	baseline := int32(0)
	latest, err := r.Maintenance.LatestByVehicle(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.Odometer != nil {
		baseline = *latest.Odometer
	}

	outcome := &checkoutOutcome{vehicleStatus: domain.VehicleStatusAvailable}
	vehicle.Odometer = finalOdometer

	if finalOdometer-baseline >= maintenanceIntervalKm {
		today := domain.Today()
		window := &domain.MaintenanceWindow{
			VehicleID:   vehicle.ID,
			StartDate:   today,
			Type:        domain.MaintenancePreventive,
			Cost:        decimal.Zero,
			EmployeeID:  &employeeID,
			Odometer:    &finalOdometer,
			Description: fmt.Sprintf("Preventive maintenance after %d km since last service", finalOdometer-baseline),
		}
		if err := r.Maintenance.Create(ctx, window); err != nil {
			return nil, err
		}
		vehicle.LastMaintenanceDate = &today
		outcome.requiresMaintenance = true
		outcome.vehicleStatus = domain.VehicleStatusInMaintenance
		outcome.windowID = &window.ID
	}

	vehicle.Status = outcome.vehicleStatus
	if err := r.Vehicles.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return outcome, nil
}

type maintenanceService struct {
	store repository.Store
}

func NewMaintenanceService(store repository.Store) MaintenanceService {
	return &maintenanceService{store: store}
}

// Create opens a maintenance window through the staff-facing path. An
// in-progress window puts the vehicle in maintenance immediately, and any
// future PENDING rental swallowed by the window is cancelled on the spot
// with the window's responsible employee recorded as canceller.
func (s *maintenanceService) Create(ctx context.Context, in MaintenanceInput) (*domain.MaintenanceWindow, error) {
	start := domain.DateOnly(in.StartDate)
	var end *time.Time
	if in.EndDate != nil {
		e := domain.DateOnly(*in.EndDate)
		end = &e
	}
	if end != nil && !start.Before(*end) {
		return nil, domain.NewBusinessRule("invalid date range: start date must precede end date")
	}
	if in.Cost.IsNegative() {
		return nil, domain.NewBusinessRule("maintenance cost must not be negative")
	}

	var window *domain.MaintenanceWindow
	var cancelled []int32
	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		vehicle, err := r.Vehicles.GetByIDForUpdate(ctx, in.VehicleID)
		if err != nil {
			return err
		}
		if in.EmployeeID != nil {
			if _, err := r.Employees.GetByID(ctx, *in.EmployeeID); err != nil {
				return err
			}
		}

		active, err := r.Rentals.ListByVehicle(ctx, in.VehicleID,
			[]domain.RentalStatus{domain.RentalStatusInProgress, domain.RentalStatusCheckout})
		if err != nil {
			return err
		}
		if len(active) > 0 {
			return domain.NewBusinessRule("vehicle %d has a rental in progress or in checkout", in.VehicleID)
		}

		odometer := in.Odometer
		if odometer == nil {
			odo := vehicle.Odometer
			odometer = &odo
		}
		window = &domain.MaintenanceWindow{
			VehicleID:   in.VehicleID,
			StartDate:   start,
			EndDate:     end,
			Type:        in.Type,
			Cost:        in.Cost,
			EmployeeID:  in.EmployeeID,
			Odometer:    odometer,
			Description: in.Description,
		}
		if err := r.Maintenance.Create(ctx, window); err != nil {
			return err
		}

		today := domain.Today()
		if window.InProgress(today) {
			if err := r.Vehicles.UpdateStatus(ctx, vehicle.ID, domain.VehicleStatusInMaintenance); err != nil {
				return err
			}
		}

		cancelled, err = cancelSwallowedRentals(ctx, r, window, today)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Maintenance window created", "maintenance_id", window.ID, "vehicle_id", window.VehicleID,
		"type", window.Type, "cancelled_rentals", len(cancelled))
	return window, nil
}

// cancelSwallowedRentals cancels every future PENDING rental on the window's
// vehicle whose range the window would swallow: an open-ended window affects
// all of them, a bounded window those starting on or before its end date.
func cancelSwallowedRentals(ctx context.Context, r *repository.Repositories, window *domain.MaintenanceWindow, today time.Time) ([]int32, error) {
	pending, err := r.Rentals.ListByVehicle(ctx, window.VehicleID, []domain.RentalStatus{domain.RentalStatusPending})
	if err != nil {
		return nil, err
	}

	var cancelled []int32
	now := time.Now()
	for i := range pending {
		rt := &pending[i]
		if rt.StartDate.Before(today) {
			continue
		}
		if window.EndDate != nil && window.EndDate.Before(rt.StartDate) {
			continue
		}
		rt.Status = domain.RentalStatusCancelled
		rt.CancelReason = "vehicle scheduled for maintenance"
		rt.CancelledAt = &now
		rt.CancelledBy = window.EmployeeID
		if err := r.Rentals.Update(ctx, rt); err != nil {
			return nil, err
		}
		cancelled = append(cancelled, rt.ID)
	}
	return cancelled, nil
}

func (s *maintenanceService) Update(ctx context.Context, id int32, in UpdateMaintenanceInput) (*domain.MaintenanceWindow, error) {
	var window *domain.MaintenanceWindow
	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		var err error
		window, err = r.Maintenance.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if in.VehicleID != nil {
			if _, err := r.Vehicles.GetByID(ctx, *in.VehicleID); err != nil {
				return err
			}
			window.VehicleID = *in.VehicleID
		}
		if in.EmployeeID != nil {
			if _, err := r.Employees.GetByID(ctx, *in.EmployeeID); err != nil {
				return err
			}
			window.EmployeeID = in.EmployeeID
		}
		if in.StartDate != nil {
			window.StartDate = domain.DateOnly(*in.StartDate)
		}
		if in.ClearEnd {
			window.EndDate = nil
		} else if in.EndDate != nil {
			e := domain.DateOnly(*in.EndDate)
			window.EndDate = &e
		}
		if window.EndDate != nil && !window.StartDate.Before(*window.EndDate) {
			return domain.NewBusinessRule("invalid date range: start date must precede end date")
		}
		if in.Type != nil {
			window.Type = *in.Type
		}
		if in.Cost != nil {
			if in.Cost.IsNegative() {
				return domain.NewBusinessRule("maintenance cost must not be negative")
			}
			window.Cost = *in.Cost
		}
		if in.Description != nil {
			window.Description = *in.Description
		}

		if err := r.Maintenance.Update(ctx, window); err != nil {
			return err
		}

		// A window that is open after the edit keeps the vehicle out of
		// service.
		if window.InProgress(domain.Today()) {
			return r.Vehicles.UpdateStatus(ctx, window.VehicleID, domain.VehicleStatusInMaintenance)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return window, nil
}

func (s *maintenanceService) Get(ctx context.Context, id int32) (*domain.MaintenanceWindow, error) {
	return s.store.Repos().Maintenance.GetByID(ctx, id)
}

func (s *maintenanceService) List(ctx context.Context, f repository.MaintenanceFilter) ([]domain.MaintenanceWindow, error) {
	return s.store.Repos().Maintenance.List(ctx, f)
}

func (s *maintenanceService) ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.MaintenanceWindow, error) {
	repos := s.store.Repos()
	if _, err := repos.Vehicles.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	return repos.Maintenance.ListByVehicle(ctx, vehicleID)
}

// Delete removes a window. Deleting a window that was still in progress
// releases the vehicle back to AVAILABLE.
func (s *maintenanceService) Delete(ctx context.Context, id int32) error {
	return s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		window, err := r.Maintenance.GetByID(ctx, id)
		if err != nil {
			return err
		}
		inProgress := window.InProgress(domain.Today())
		if err := r.Maintenance.Delete(ctx, id); err != nil {
			return err
		}
		if inProgress {
			return r.Vehicles.UpdateStatus(ctx, window.VehicleID, domain.VehicleStatusAvailable)
		}
		return nil
	})
}
