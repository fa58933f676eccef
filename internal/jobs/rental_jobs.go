package jobs

import (
	"context"

	"carrental-backend/internal/logger"
)

// SweepRentalLifecycle advances rental statuses against the calendar:
// PENDING rentals whose start date arrived become IN_PROGRESS, IN_PROGRESS
// rentals past their end date become CHECKOUT. Safe to run alongside request
// traffic: it only moves rentals within the blocking-status set.
func (jr *JobRunner) SweepRentalLifecycle() {
	jr.runWithRecovery("SweepRentalLifecycle", func() {
		ctx := context.Background()

		promoted, err := jr.services.Rental.SweepLifecycle(ctx)
		if err != nil {
			logger.Error("Failed to sweep rental lifecycle", "error", err)
			return
		}
		logger.Info("Promoted rentals", "count", promoted)
	})
}

// SyncRentedVehicles marks vehicles RENTED when they have a rental in
// progress but are still flagged AVAILABLE or RESERVED.
func (jr *JobRunner) SyncRentedVehicles() {
	jr.runWithRecovery("SyncRentedVehicles", func() {
		ctx := context.Background()

		query := `
			UPDATE vehicles
			SET status = 'RENTED',
			    updated_on = NOW()
			WHERE status IN ('AVAILABLE', 'RESERVED')
			  AND EXISTS (
			      SELECT 1 FROM rentals
			      WHERE rentals.vehicle_id = vehicles.id
			        AND rentals.status = 'IN_PROGRESS'
			  )
		`
		res, err := jr.db.ExecContext(ctx, query)
		if err != nil {
			logger.Error("Failed to sync rented vehicles", "error", err)
			return
		}
		if count, err := res.RowsAffected(); err == nil && count > 0 {
			logger.Info("Marked vehicles as rented", "count", count)
		}
	})
}
