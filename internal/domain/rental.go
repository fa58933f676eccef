package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusPending    RentalStatus = "PENDING"
	RentalStatusInProgress RentalStatus = "IN_PROGRESS"
	RentalStatusCheckout   RentalStatus = "CHECKOUT"
	RentalStatusFinalized  RentalStatus = "FINALIZED"
	RentalStatusCancelled  RentalStatus = "CANCELLED"
)

// BlockingRentalStatuses are the statuses whose date range occupies the
// vehicle for availability purposes. FINALIZED and CANCELLED never block.
var BlockingRentalStatuses = []RentalStatus{
	RentalStatusPending,
	RentalStatusInProgress,
	RentalStatusCheckout,
}

// Blocks reports whether a rental in this status occupies its vehicle.
func (s RentalStatus) Blocks() bool {
	for _, b := range BlockingRentalStatuses {
		if s == b {
			return true
		}
	}
	return false
}

// Terminal reports whether no further date or vehicle changes are allowed.
func (s RentalStatus) Terminal() bool {
	return s == RentalStatusCheckout || s == RentalStatusFinalized || s == RentalStatusCancelled
}

// Cancellable reports whether the rental may still move to CANCELLED.
func (s RentalStatus) Cancellable() bool {
	return s == RentalStatusPending || s == RentalStatusInProgress
}

type Rental struct {
	ID              int32           `json:"id"`
	ClientID        int32           `json:"client_id"`
	VehicleID       int32           `json:"vehicle_id"`
	EmployeeID      int32           `json:"employee_id"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	Status          RentalStatus    `json:"status"`
	BaseCost        decimal.Decimal `json:"base_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Observations    string          `json:"observations"`
	InitialOdometer *int32          `json:"initial_odometer,omitempty"`
	FinalOdometer   *int32          `json:"final_odometer,omitempty"`
	CancelReason    string          `json:"cancel_reason,omitempty"`
	CancelledAt     *time.Time      `json:"cancelled_at,omitempty"`
	CancelledBy     *int32          `json:"cancelled_by,omitempty"`
	CreatedOn       time.Time       `json:"created_on"`
	UpdatedOn       time.Time       `json:"updated_on"`
}

// Period returns the rental's inclusive booking range.
func (r *Rental) Period() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}

// CheckoutResult reports the outcome of finalizing a rental.
type CheckoutResult struct {
	Rental              *Rental       `json:"rental"`
	KmTravelled         int32         `json:"km_travelled"`
	RequiresMaintenance bool          `json:"requires_maintenance"`
	NewVehicleStatus    VehicleStatus `json:"new_vehicle_status"`
	MaintenanceWindowID *int32        `json:"maintenance_window_id,omitempty"`
}

// CancelResult reports the outcome of cancelling a rental.
type CancelResult struct {
	Rental         *Rental      `json:"rental"`
	PreviousStatus RentalStatus `json:"previous_status"`
	CancelledAt    time.Time    `json:"cancelled_at"`
}
