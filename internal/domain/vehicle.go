package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type VehicleStatus string

const (
	VehicleStatusAvailable     VehicleStatus = "AVAILABLE"
	VehicleStatusReserved      VehicleStatus = "RESERVED"
	VehicleStatusRented        VehicleStatus = "RENTED"
	VehicleStatusInMaintenance VehicleStatus = "IN_MAINTENANCE"
	VehicleStatusOutOfService  VehicleStatus = "OUT_OF_SERVICE"
)

// HeldForRental reports whether the status implies the vehicle is held for a
// rental, so a cancellation may release it back to AVAILABLE.
func (s VehicleStatus) HeldForRental() bool {
	return s == VehicleStatusReserved || s == VehicleStatusRented
}

type Vehicle struct {
	ID                  int32         `json:"id"`
	Plate               string        `json:"plate"`
	Brand               string        `json:"brand"`
	Model               string        `json:"model"`
	Year                int32         `json:"year"`
	CategoryID          int32         `json:"category_id"`
	Status              VehicleStatus `json:"status"`
	Odometer            int32         `json:"odometer"`
	LastMaintenanceDate *time.Time    `json:"last_maintenance_date,omitempty"`
	CreatedOn           time.Time     `json:"created_on"`
	UpdatedOn           time.Time     `json:"updated_on"`
}

type VehicleCategory struct {
	ID          int32           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
}
