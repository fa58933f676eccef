package jobs

import (
	"context"

	"carrental-backend/internal/logger"
)

// ReleaseMaintainedVehicles returns vehicles to AVAILABLE once every
// maintenance window on them has finished (end_date in the past) while the
// vehicle is still flagged IN_MAINTENANCE.
func (jr *JobRunner) ReleaseMaintainedVehicles() {
	jr.runWithRecovery("ReleaseMaintainedVehicles", func() {
		ctx := context.Background()

		query := `
			UPDATE vehicles
			SET status = 'AVAILABLE',
			    updated_on = NOW()
			WHERE status = 'IN_MAINTENANCE'
			  AND NOT EXISTS (
			      SELECT 1 FROM maintenance_windows
			      WHERE maintenance_windows.vehicle_id = vehicles.id
			        AND maintenance_windows.start_date <= NOW()
			        AND (maintenance_windows.end_date IS NULL OR maintenance_windows.end_date > NOW())
			  )
		`
		res, err := jr.db.ExecContext(ctx, query)
		if err != nil {
			logger.Error("Failed to release maintained vehicles", "error", err)
			return
		}
		if count, err := res.RowsAffected(); err == nil && count > 0 {
			logger.Info("Released vehicles from maintenance", "count", count)
		}
	})
}
