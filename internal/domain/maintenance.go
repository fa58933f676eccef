package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "PREVENTIVE"
	MaintenanceCorrective MaintenanceType = "CORRECTIVE"
)

// MaintenanceWindow is a service interval for a vehicle. A nil EndDate means
// the window is open-ended: still in progress and unbounded into the future
// for overlap purposes.
type MaintenanceWindow struct {
	ID          int32           `json:"id"`
	VehicleID   int32           `json:"vehicle_id"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	Type        MaintenanceType `json:"type"`
	Cost        decimal.Decimal `json:"cost"`
	EmployeeID  *int32          `json:"employee_id,omitempty"`
	Odometer    *int32          `json:"odometer,omitempty"`
	Description string          `json:"description"`
	CreatedOn   time.Time       `json:"created_on"`
	UpdatedOn   time.Time       `json:"updated_on"`
}

// InProgress reports whether the window is open as of the given date. A
// window scheduled entirely in the future is not yet in progress.
func (m *MaintenanceWindow) InProgress(asOf time.Time) bool {
	if m.StartDate.After(asOf) {
		return false
	}
	return m.EndDate == nil || m.EndDate.After(asOf)
}

// BlocksRange reports whether the window overlaps the requested range.
func (m *MaintenanceWindow) BlocksRange(r DateRange) bool {
	return r.OverlapsOpenEnd(m.StartDate, m.EndDate)
}
