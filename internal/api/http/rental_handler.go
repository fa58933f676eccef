package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/service"
)

// RentalHandler exposes the rental lifecycle over HTTP
type RentalHandler struct {
	rentals service.RentalService
}

// NewRentalHandler creates a new rental handler
func NewRentalHandler(rentals service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

type createRentalRequest struct {
	ClientID        int32           `json:"client_id"`
	VehicleID       int32           `json:"vehicle_id"`
	EmployeeID      int32           `json:"employee_id"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	BaseCost        decimal.Decimal `json:"base_cost"`
	Observations    string          `json:"observations"`
	InitialOdometer *int32          `json:"initial_odometer"`
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		writeBadRequest(w, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		writeBadRequest(w, "end_date must be YYYY-MM-DD")
		return
	}

	rental, err := h.rentals.Create(r.Context(), service.CreateRentalInput{
		ClientID:        req.ClientID,
		VehicleID:       req.VehicleID,
		EmployeeID:      req.EmployeeID,
		StartDate:       start,
		EndDate:         end,
		BaseCost:        req.BaseCost,
		Observations:    req.Observations,
		InitialOdometer: req.InitialOdometer,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

type updateRentalRequest struct {
	ClientID     *int32           `json:"client_id"`
	VehicleID    *int32           `json:"vehicle_id"`
	EmployeeID   *int32           `json:"employee_id"`
	StartDate    *string          `json:"start_date"`
	EndDate      *string          `json:"end_date"`
	BaseCost     *decimal.Decimal `json:"base_cost"`
	Observations *string          `json:"observations"`
}

func (h *RentalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var req updateRentalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	in := service.UpdateRentalInput{
		ClientID:     req.ClientID,
		VehicleID:    req.VehicleID,
		EmployeeID:   req.EmployeeID,
		BaseCost:     req.BaseCost,
		Observations: req.Observations,
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

	rental, err := h.rentals.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	rental, err := h.rentals.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.RentalFilter{
		ClientID:   queryInt32(r, "client_id"),
		VehicleID:  queryInt32(r, "vehicle_id"),
		EmployeeID: queryInt32(r, "employee_id"),
	}
	if raw := q.Get("status"); raw != "" {
		filter.Statuses = []domain.RentalStatus{domain.RentalStatus(raw)}
	}
	var err error
	if filter.StartFrom, err = parseOptionalDate(q.Get("start_from")); err != nil {
		writeBadRequest(w, "start_from must be YYYY-MM-DD")
		return
	}
	if filter.StartTo, err = parseOptionalDate(q.Get("start_to")); err != nil {
		writeBadRequest(w, "start_to must be YYYY-MM-DD")
		return
	}
	if filter.EndFrom, err = parseOptionalDate(q.Get("end_from")); err != nil {
		writeBadRequest(w, "end_from must be YYYY-MM-DD")
		return
	}
	if filter.EndTo, err = parseOptionalDate(q.Get("end_to")); err != nil {
		writeBadRequest(w, "end_to must be YYYY-MM-DD")
		return
	}

	rentals, err := h.rentals.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := h.rentals.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type checkoutRequest struct {
	FinalOdometer int32  `json:"final_odometer"`
	Remarks       string `json:"remarks"`
}

// Checkout closes a rental. The acting employee is taken from the token.
func (h *RentalHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	result, err := h.rentals.Checkout(r.Context(), id, req.FinalOdometer, claims.EmployeeID, req.Remarks)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var req cancelRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	result, err := h.rentals.Cancel(r.Context(), id, req.Reason, claims.EmployeeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CheckAvailability reports whether a vehicle is free over a date range.
func (h *RentalHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	q := r.URL.Query()
	var start, end time.Time
	if start, err = parseDate(q.Get("start_date")); err != nil {
		writeBadRequest(w, "start_date must be YYYY-MM-DD")
		return
	}
	if end, err = parseDate(q.Get("end_date")); err != nil {
		writeBadRequest(w, "end_date must be YYYY-MM-DD")
		return
	}
	excludeRentalID := queryInt32(r, "exclude_rental_id")

	result, err := h.rentals.CheckAvailability(r.Context(), vehicleID, start, end, excludeRentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SweepLifecycle triggers the date-driven status sweep on demand.
func (h *RentalHandler) SweepLifecycle(w http.ResponseWriter, r *http.Request) {
	promoted, err := h.rentals.SweepLifecycle(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"promoted": promoted})
}
