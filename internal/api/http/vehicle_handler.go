package http

import (
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

// VehicleHandler exposes the vehicle fleet over HTTP
type VehicleHandler struct {
	vehicles service.VehicleService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicles service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

type vehicleRequest struct {
	Plate      string `json:"plate"`
	Brand      string `json:"brand"`
	Model      string `json:"model"`
	Year       int32  `json:"year"`
	CategoryID int32  `json:"category_id"`
	Status     string `json:"status"`
	Odometer   int32  `json:"odometer"`
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	vehicle := &domain.Vehicle{
		Plate:      req.Plate,
		Brand:      req.Brand,
		Model:      req.Model,
		Year:       req.Year,
		CategoryID: req.CategoryID,
		Status:     domain.VehicleStatus(req.Status),
		Odometer:   req.Odometer,
	}
	if err := h.vehicles.Create(r.Context(), vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var req vehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	vehicle := &domain.Vehicle{
		ID:         id,
		Plate:      req.Plate,
		Brand:      req.Brand,
		Model:      req.Model,
		Year:       req.Year,
		CategoryID: req.CategoryID,
		Status:     domain.VehicleStatus(req.Status),
		Odometer:   req.Odometer,
	}
	if err := h.vehicles.Update(r.Context(), vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	vehicle, err := h.vehicles.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.VehicleStatus(r.URL.Query().Get("status"))
	categoryID := queryInt32(r, "category_id")

	vehicles, err := h.vehicles.List(r.Context(), status, categoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := h.vehicles.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
