package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/service"
)

// ChargeHandler exposes penalty and damage charges over HTTP
type ChargeHandler struct {
	charges service.ChargeService
}

// NewChargeHandler creates a new charge handler
func NewChargeHandler(charges service.ChargeService) *ChargeHandler {
	return &ChargeHandler{charges: charges}
}

type createChargeRequest struct {
	RentalID    int32           `json:"rental_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

func (h *ChargeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createChargeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	charge, err := h.charges.Add(r.Context(), service.ChargeInput{
		RentalID:    req.RentalID,
		Type:        domain.ChargeType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, charge)
}

type updateChargeRequest struct {
	RentalID    *int32           `json:"rental_id"`
	Type        *string          `json:"type"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
}

func (h *ChargeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var req updateChargeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	in := service.UpdateChargeInput{
		RentalID:    req.RentalID,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Type != nil {
		t := domain.ChargeType(*req.Type)
		in.Type = &t
	}

	charge, err := h.charges.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, charge)
}

func (h *ChargeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	charge, err := h.charges.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, charge)
}

func (h *ChargeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ChargeFilter{
		RentalID: queryInt32(r, "rental_id"),
	}
	if raw := q.Get("type"); raw != "" {
		filter.Types = []domain.ChargeType{domain.ChargeType(raw)}
	}
	if raw := q.Get("amount_from"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			writeBadRequest(w, "amount_from must be numeric")
			return
		}
		filter.AmountFrom = &v
	}
	if raw := q.Get("amount_to"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			writeBadRequest(w, "amount_to must be numeric")
			return
		}
		filter.AmountTo = &v
	}
	var err error
	if filter.From, err = parseOptionalDate(q.Get("from")); err != nil {
		writeBadRequest(w, "from must be YYYY-MM-DD")
		return
	}
	if filter.To, err = parseOptionalDate(q.Get("to")); err != nil {
		writeBadRequest(w, "to must be YYYY-MM-DD")
		return
	}

	charges, err := h.charges.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, charges)
}

func (h *ChargeHandler) ListByRental(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	charges, err := h.charges.ListByRental(r.Context(), rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, charges)
}

func (h *ChargeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := h.charges.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
