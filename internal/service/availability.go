package service

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

// CheckAvailability reports whether the vehicle can be booked over the
// inclusive [start, end] range. Maintenance conflicts are collected first,
// then blocking rentals; both kinds are returned so the caller can present a
// complete explanation. excludeRentalID skips the rental's own row when
// re-validating an edit (0 means no exclusion).
func (s *rentalService) CheckAvailability(ctx context.Context, vehicleID int32, start, end time.Time, excludeRentalID int32) (*domain.AvailabilityResult, error) {
	period := domain.DateRange{Start: domain.DateOnly(start), End: domain.DateOnly(end)}
	if !period.Valid() {
		return nil, domain.NewBusinessRule("invalid date range: start date is after end date")
	}

	repos := s.store.Repos()
	if _, err := repos.Vehicles.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}

	conflicts, err := collectConflicts(ctx, repos, vehicleID, period, excludeRentalID)
	if err != nil {
		return nil, err
	}
	return &domain.AvailabilityResult{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

// collectConflicts gathers every blocking interval on the vehicle that
// overlaps the requested period. It runs against whatever repositories it is
// handed, so create/edit paths can call it inside their own transaction.
func collectConflicts(ctx context.Context, repos *repository.Repositories, vehicleID int32, period domain.DateRange, excludeRentalID int32) ([]domain.Conflict, error) {
	var conflicts []domain.Conflict

	windows, err := repos.Maintenance.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	for _, w := range windows {
		if w.BlocksRange(period) {
			conflicts = append(conflicts, domain.Conflict{
				Kind:          domain.ConflictMaintenance,
				MaintenanceID: w.ID,
				StartDate:     w.StartDate,
				EndDate:       w.EndDate,
			})
		}
	}

	rentals, err := repos.Rentals.ListByVehicle(ctx, vehicleID, domain.BlockingRentalStatuses)
	if err != nil {
		return nil, err
	}
	for _, rt := range rentals {
		if rt.ID == excludeRentalID {
			continue
		}
		if period.Overlaps(rt.Period()) {
			end := rt.EndDate
			conflicts = append(conflicts, domain.Conflict{
				Kind:         domain.ConflictRental,
				RentalID:     rt.ID,
				StartDate:    rt.StartDate,
				EndDate:      &end,
				RentalStatus: rt.Status,
			})
		}
	}

	return conflicts, nil
}
