package domain

import "time"

type ConflictKind string

const (
	ConflictMaintenance ConflictKind = "maintenance"
	ConflictRental      ConflictKind = "rental"
)

// Conflict describes one blocking interval found during an availability
// check. RentalStatus is set for rental conflicts only; EndDate is nil for
// open-ended maintenance windows.
type Conflict struct {
	Kind          ConflictKind `json:"kind"`
	RentalID      int32        `json:"rental_id,omitempty"`
	MaintenanceID int32        `json:"maintenance_id,omitempty"`
	StartDate     time.Time    `json:"start_date"`
	EndDate       *time.Time   `json:"end_date,omitempty"`
	RentalStatus  RentalStatus `json:"rental_status,omitempty"`
}

// AvailabilityResult is the outcome of checking a vehicle over a date range.
type AvailabilityResult struct {
	Available bool       `json:"available"`
	Conflicts []Conflict `json:"conflicts"`
}
