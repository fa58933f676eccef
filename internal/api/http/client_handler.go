package http

import (
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

// ClientHandler exposes client records over HTTP
type ClientHandler struct {
	clients service.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clients service.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

type clientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Document  string `json:"document"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	client := &domain.Client{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Document:  req.Document,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
	}
	if err := h.clients.Create(r.Context(), client); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	var req clientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	client := &domain.Client{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Document:  req.Document,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
	}
	if err := h.clients.Update(r.Context(), client); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	client, err := h.clients.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if err := h.clients.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type rentalHistoryResponse struct {
	Rentals  []domain.Rental `json:"rentals"`
	Total    int32           `json:"total"`
	Page     int32           `json:"page"`
	PageSize int32           `json:"page_size"`
}

// RentalHistory returns a client's rentals, newest first, paginated.
func (h *ClientHandler) RentalHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	q := r.URL.Query()
	page := queryInt32(r, "page")
	if page < 1 {
		page = 1
	}
	pageSize := queryInt32(r, "page_size")
	if pageSize < 1 {
		pageSize = 20
	}
	from, err := parseOptionalDate(q.Get("from"))
	if err != nil {
		writeBadRequest(w, "from must be YYYY-MM-DD")
		return
	}
	to, err := parseOptionalDate(q.Get("to"))
	if err != nil {
		writeBadRequest(w, "to must be YYYY-MM-DD")
		return
	}

	rentals, total, err := h.clients.RentalHistory(r.Context(), id, page, pageSize, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentalHistoryResponse{
		Rentals:  rentals,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}
