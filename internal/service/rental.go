package service

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

const (
	// maintenanceIntervalKm is the accumulated distance after which a
	// vehicle is due for preventive maintenance.
	maintenanceIntervalKm = 10000

	// maxCheckoutDistanceKm caps the odometer delta accepted at checkout,
	// guarding against fat-finger input.
	maxCheckoutDistanceKm = 10000
)

type rentalService struct {
	store repository.Store
}

func NewRentalService(store repository.Store) RentalService {
	return &rentalService{store: store}
}

// Create books a vehicle for a client. The availability check and the insert
// run in one transaction with the vehicle row locked, so two concurrent
// bookings for the same slot serialize instead of double-booking.
func (s *rentalService) Create(ctx context.Context, in CreateRentalInput) (*domain.Rental, error) {
	start := domain.DateOnly(in.StartDate)
	end := domain.DateOnly(in.EndDate)
	period := domain.DateRange{Start: start, End: end}
	if !period.Valid() {
		return nil, domain.NewBusinessRule("invalid date range: start date is after end date")
	}
	if in.BaseCost.IsNegative() {
		return nil, domain.NewBusinessRule("base cost must not be negative")
	}

	var rental *domain.Rental
	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		vehicle, err := r.Vehicles.GetByIDForUpdate(ctx, in.VehicleID)
		if err != nil {
			return err
		}
		if _, err := r.Clients.GetByID(ctx, in.ClientID); err != nil {
			return err
		}
		if _, err := r.Employees.GetByID(ctx, in.EmployeeID); err != nil {
			return err
		}

		conflicts, err := collectConflicts(ctx, r, in.VehicleID, period, 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &domain.BusinessRuleError{
				Msg:       "vehicle is not available for the requested period",
				Conflicts: conflicts,
			}
		}

		initialOdometer := in.InitialOdometer
		if initialOdometer == nil {
			odo := vehicle.Odometer
			initialOdometer = &odo
		}

		// No explicit price means the category's daily rate applies.
		baseCost := in.BaseCost
		if baseCost.IsZero() {
			category, err := r.Categories.GetByID(ctx, vehicle.CategoryID)
			if err != nil {
				return err
			}
			baseCost, _ = QuoteBaseCost(category.DailyRate, period)
		}

		rental = &domain.Rental{
			ClientID:        in.ClientID,
			VehicleID:       in.VehicleID,
			EmployeeID:      in.EmployeeID,
			StartDate:       start,
			EndDate:         end,
			Status:          domain.RentalStatusPending,
			BaseCost:        baseCost,
			TotalCost:       baseCost,
			Observations:    in.Observations,
			InitialOdometer: initialOdometer,
		}
		if err := r.Rentals.Create(ctx, rental); err != nil {
			return err
		}

		if vehicle.Status == domain.VehicleStatusAvailable {
			held := domain.VehicleStatusReserved
			if !start.After(domain.Today()) {
				held = domain.VehicleStatusRented
			}
			if err := r.Vehicles.UpdateStatus(ctx, vehicle.ID, held); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Rental created", "rental_id", rental.ID, "vehicle_id", rental.VehicleID, "client_id", rental.ClientID)
	return rental, nil
}

// Update applies a partial edit. Changing dates or the vehicle re-runs the
// availability check excluding the rental's own row, inside the same
// transaction as the write.
func (s *rentalService) Update(ctx context.Context, id int32, in UpdateRentalInput) (*domain.Rental, error) {
	var rental *domain.Rental
	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		var err error
		rental, err = r.Rentals.GetByID(ctx, id)
		if err != nil {
			return err
		}

		scheduleChanged := (in.StartDate != nil && !domain.DateOnly(*in.StartDate).Equal(rental.StartDate)) ||
			(in.EndDate != nil && !domain.DateOnly(*in.EndDate).Equal(rental.EndDate)) ||
			(in.VehicleID != nil && *in.VehicleID != rental.VehicleID)
		if scheduleChanged && rental.Status.Terminal() {
			return domain.NewBusinessRule("rental %d is %s and no longer accepts date or vehicle changes", id, rental.Status)
		}

		if in.ClientID != nil {
			if _, err := r.Clients.GetByID(ctx, *in.ClientID); err != nil {
				return err
			}
			rental.ClientID = *in.ClientID
		}
		if in.EmployeeID != nil {
			if _, err := r.Employees.GetByID(ctx, *in.EmployeeID); err != nil {
				return err
			}
			rental.EmployeeID = *in.EmployeeID
		}
		if in.VehicleID != nil {
			rental.VehicleID = *in.VehicleID
		}
		if in.StartDate != nil {
			rental.StartDate = domain.DateOnly(*in.StartDate)
		}
		if in.EndDate != nil {
			rental.EndDate = domain.DateOnly(*in.EndDate)
		}
		if in.Observations != nil {
			rental.Observations = *in.Observations
		}
		if !rental.Period().Valid() {
			return domain.NewBusinessRule("invalid date range: start date is after end date")
		}

		if scheduleChanged {
			// Lock the target vehicle before re-validating, same boundary
			// as Create.
			if _, err := r.Vehicles.GetByIDForUpdate(ctx, rental.VehicleID); err != nil {
				return err
			}
			conflicts, err := collectConflicts(ctx, r, rental.VehicleID, rental.Period(), rental.ID)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				return &domain.BusinessRuleError{
					Msg:       "vehicle is not available for the requested period",
					Conflicts: conflicts,
				}
			}
		}

		if in.BaseCost != nil {
			if in.BaseCost.IsNegative() {
				return domain.NewBusinessRule("base cost must not be negative")
			}
			charges, err := r.Charges.ListByRental(ctx, rental.ID)
			if err != nil {
				return err
			}
			total := *in.BaseCost
			for _, c := range charges {
				total = total.Add(c.Amount)
			}
			rental.BaseCost = *in.BaseCost
			rental.TotalCost = total
		}

		return r.Rentals.Update(ctx, rental)
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) Get(ctx context.Context, id int32) (*domain.Rental, error) {
	return s.store.Repos().Rentals.GetByID(ctx, id)
}

func (s *rentalService) List(ctx context.Context, f repository.RentalFilter) ([]domain.Rental, error) {
	return s.store.Repos().Rentals.List(ctx, f)
}

// Delete removes a rental. Rentals with recorded charges are retained
// forever; deleting them is a business rule violation.
func (s *rentalService) Delete(ctx context.Context, id int32) error {
	return s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		if _, err := r.Rentals.GetByID(ctx, id); err != nil {
			return err
		}
		count, err := r.Charges.CountByRental(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.NewBusinessRule("rental %d has %d charge(s) and cannot be deleted", id, count)
		}
		return r.Rentals.Delete(ctx, id)
	})
}

// Checkout finalizes a rental, records the closing odometer and hands the
// mileage delta to the maintenance trigger. A rental whose scheduled end
// date has passed is accepted even if the nightly sweep has not promoted it
// yet, so operators are not blocked by a missed tick.
func (s *rentalService) Checkout(ctx context.Context, id int32, finalOdometer int32, employeeID int32, remarks string) (*domain.CheckoutResult, error) {
	var result *domain.CheckoutResult
	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		rental, err := r.Rentals.GetByID(ctx, id)
		if err != nil {
			return err
		}
		switch rental.Status {
		case domain.RentalStatusFinalized:
			return domain.NewBusinessRule("rental %d is already finalized", id)
		case domain.RentalStatusCancelled:
			return domain.NewBusinessRule("rental %d is cancelled", id)
		}

		today := domain.Today()
		elapsed := rental.EndDate.Before(today)
		if rental.Status != domain.RentalStatusInProgress && rental.Status != domain.RentalStatusCheckout && !elapsed {
			return domain.NewBusinessRule("rental %d is not in progress and its period has not elapsed", id)
		}

		if _, err := r.Employees.GetByID(ctx, employeeID); err != nil {
			return err
		}

		if rental.InitialOdometer == nil {
			return domain.NewBusinessRule("rental %d has no initial odometer reading", id)
		}
		initial := *rental.InitialOdometer
		if finalOdometer <= initial {
			return domain.NewBusinessRule("final odometer %d must be greater than initial odometer %d", finalOdometer, initial)
		}
		kmTravelled := finalOdometer - initial
		if kmTravelled > maxCheckoutDistanceKm {
			return domain.NewBusinessRule("odometer delta %d km exceeds the %d km checkout cap", kmTravelled, maxCheckoutDistanceKm)
		}

		vehicle, err := r.Vehicles.GetByIDForUpdate(ctx, rental.VehicleID)
		if err != nil {
			return err
		}

		rental.Status = domain.RentalStatusFinalized
		rental.FinalOdometer = &finalOdometer
		if remarks != "" {
			if rental.Observations != "" {
				rental.Observations += "\n" + remarks
			} else {
				rental.Observations = remarks
			}
		}
		if err := r.Rentals.Update(ctx, rental); err != nil {
			return err
		}

		outcome, err := syncVehicleAfterCheckout(ctx, r, vehicle, finalOdometer, employeeID)
		if err != nil {
			return err
		}

		result = &domain.CheckoutResult{
			Rental:              rental,
			KmTravelled:         kmTravelled,
			RequiresMaintenance: outcome.requiresMaintenance,
			NewVehicleStatus:    outcome.vehicleStatus,
			MaintenanceWindowID: outcome.windowID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Rental checked out", "rental_id", id, "km_travelled", result.KmTravelled,
		"requires_maintenance", result.RequiresMaintenance, "vehicle_status", result.NewVehicleStatus)
	return result, nil
}

// Cancel aborts a PENDING or IN_PROGRESS rental and releases the vehicle if
// it was held for it.
func (s *rentalService) Cancel(ctx context.Context, id int32, reason string, employeeID int32) (*domain.CancelResult, error) {
	var result *domain.CancelResult
	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		rental, err := r.Rentals.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !rental.Status.Cancellable() {
			return domain.NewBusinessRule("rental %d is %s and cannot be cancelled", id, rental.Status)
		}
		if _, err := r.Employees.GetByID(ctx, employeeID); err != nil {
			return err
		}

		previous := rental.Status
		now := time.Now()
		rental.Status = domain.RentalStatusCancelled
		rental.CancelReason = reason
		rental.CancelledAt = &now
		rental.CancelledBy = &employeeID
		if err := r.Rentals.Update(ctx, rental); err != nil {
			return err
		}

		vehicle, err := r.Vehicles.GetByID(ctx, rental.VehicleID)
		if err != nil {
			return err
		}
		if vehicle.Status.HeldForRental() {
			next, err := releasedVehicleStatus(ctx, r, vehicle, rental.ID)
			if err != nil {
				return err
			}
			if next != vehicle.Status {
				if err := r.Vehicles.UpdateStatus(ctx, vehicle.ID, next); err != nil {
					return err
				}
			}
		}

		result = &domain.CancelResult{Rental: rental, PreviousStatus: previous, CancelledAt: now}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Rental cancelled", "rental_id", id, "previous_status", result.PreviousStatus, "employee_id", employeeID)
	return result, nil
}

// releasedVehicleStatus decides where a held vehicle lands after one of its
// rentals is cancelled. Another blocking rental covering today keeps the
// current hold, a remaining future booking keeps the vehicle RESERVED, and
// with no other claim it returns to AVAILABLE.
func releasedVehicleStatus(ctx context.Context, r *repository.Repositories, vehicle *domain.Vehicle, cancelledID int32) (domain.VehicleStatus, error) {
	others, err := r.Rentals.ListByVehicle(ctx, vehicle.ID, domain.BlockingRentalStatuses)
	if err != nil {
		return "", err
	}
	today := domain.Today()
	reserved := false
	for i := range others {
		if others[i].ID == cancelledID {
			continue
		}
		if others[i].Period().Overlaps(domain.DateRange{Start: today, End: today}) {
			return vehicle.Status, nil
		}
		reserved = true
	}
	if reserved {
		return domain.VehicleStatusReserved, nil
	}
	return domain.VehicleStatusAvailable, nil
}

// SweepLifecycle promotes every non-terminal rental whose calendar position
// has moved on: PENDING becomes IN_PROGRESS once the start date arrives, and
// IN_PROGRESS becomes CHECKOUT once the end date has passed. The sweep only
// moves within the blocking-status set and running it twice on the same day
// is a no-op. Returns the number of rentals promoted.
func (s *rentalService) SweepLifecycle(ctx context.Context) (int32, error) {
	today := domain.Today()
	var promoted int32

	err := s.store.WithinTx(ctx, func(r *repository.Repositories) error {
		rentals, err := r.Rentals.List(ctx, repository.RentalFilter{
			Statuses: []domain.RentalStatus{domain.RentalStatusPending, domain.RentalStatusInProgress},
		})
		if err != nil {
			return err
		}

		for i := range rentals {
			rt := &rentals[i]
			switch {
			case rt.Status == domain.RentalStatusPending && !rt.StartDate.After(today):
				rt.Status = domain.RentalStatusInProgress
			case rt.Status == domain.RentalStatusInProgress && rt.EndDate.Before(today):
				rt.Status = domain.RentalStatusCheckout
			default:
				continue
			}
			if err := r.Rentals.Update(ctx, rt); err != nil {
				return err
			}
			promoted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if promoted > 0 {
		logger.Info("Lifecycle sweep promoted rentals", "count", promoted)
	}
	return promoted, nil
}
