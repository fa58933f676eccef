package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

// CategoryHandler exposes vehicle categories over HTTP
type CategoryHandler struct {
	categories service.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categories service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type categoryRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	category := &domain.VehicleCategory{
		Name:        req.Name,
		Description: req.Description,
		DailyRate:   req.DailyRate,
	}
	if err := h.categories.Create(r.Context(), category); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	category := &domain.VehicleCategory{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		DailyRate:   req.DailyRate,
	}
	if err := h.categories.Update(r.Context(), category); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	category, err := h.categories.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := h.categories.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
