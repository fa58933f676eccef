package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/service"
)

// MaintenanceHandler exposes maintenance window management over HTTP
type MaintenanceHandler struct {
	maintenance service.MaintenanceService
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(maintenance service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance}
}

type createMaintenanceRequest struct {
	VehicleID   int32           `json:"vehicle_id"`
	StartDate   string          `json:"start_date"`
	EndDate     *string         `json:"end_date"`
	Type        string          `json:"type"`
	Cost        decimal.Decimal `json:"cost"`
	EmployeeID  *int32          `json:"employee_id"`
	Odometer    *int32          `json:"odometer"`
	Description string          `json:"description"`
}

func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMaintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		writeBadRequest(w, "start_date must be YYYY-MM-DD")
		return
	}
	in := service.MaintenanceInput{
		VehicleID:   req.VehicleID,
		StartDate:   start,
		Type:        domain.MaintenanceType(req.Type),
		Cost:        req.Cost,
		EmployeeID:  req.EmployeeID,
		Odometer:    req.Odometer,
		Description: req.Description,
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			writeBadRequest(w, "end_date must be YYYY-MM-DD")
			return
		}
		in.EndDate = &end
	}

	window, err := h.maintenance.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, window)
}

type updateMaintenanceRequest struct {
	VehicleID   *int32           `json:"vehicle_id"`
	StartDate   *string          `json:"start_date"`
	EndDate     *string          `json:"end_date"`
	ClearEnd    bool             `json:"clear_end"`
	Type        *string          `json:"type"`
	Cost        *decimal.Decimal `json:"cost"`
	EmployeeID  *int32           `json:"employee_id"`
	Description *string          `json:"description"`
}

func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var req updateMaintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	in := service.UpdateMaintenanceInput{
		VehicleID:   req.VehicleID,
		ClearEnd:    req.ClearEnd,
		Cost:        req.Cost,
		EmployeeID:  req.EmployeeID,
		Description: req.Description,
	}
	if req.Type != nil {
		t := domain.MaintenanceType(*req.Type)
		in.Type = &t
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			writeBadRequest(w, "start_date must be YYYY-MM-DD")
			return
		}
		in.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			writeBadRequest(w, "end_date must be YYYY-MM-DD")
			return
		}
		in.EndDate = &end
	}

	window, err := h.maintenance.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, window)
}

func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	window, err := h.maintenance.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, window)
}

func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.MaintenanceFilter{
		VehicleID:  queryInt32(r, "vehicle_id"),
		EmployeeID: queryInt32(r, "employee_id"),
		Type:       domain.MaintenanceType(q.Get("type")),
		State:      q.Get("state"),
	}
	windows, err := h.maintenance.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, windows)
}

func (h *MaintenanceHandler) ListByVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	windows, err := h.maintenance.ListByVehicle(r.Context(), vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, windows)
}

func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := h.maintenance.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
