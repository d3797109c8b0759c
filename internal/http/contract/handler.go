package contract

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gigledger/internal/contract"
	"github.com/MrJamesThe3rd/gigledger/internal/http/middleware"
)

type Handler struct {
	svc *contract.Service
}

func NewHandler(svc *contract.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes expects middleware.Profile to run first.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type contractResponse struct {
	ID           uuid.UUID       `json:"id"`
	Terms        string          `json:"terms"`
	Status       contract.Status `json:"status"`
	ClientID     uuid.UUID       `json:"client_id"`
	ContractorID uuid.UUID       `json:"contractor_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(c *contract.Contract) contractResponse {
	return contractResponse{
		ID:           c.ID,
		Terms:        c.Terms,
		Status:       c.Status,
		ClientID:     c.ClientID,
		ContractorID: c.ContractorID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.ProfileFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	c, err := h.svc.Get(r.Context(), id, caller.ID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		slog.ErrorContext(r.Context(), "failed to get contract", "error", err, "contract_id", id)
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.ProfileFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	contracts, err := h.svc.ListActive(r.Context(), caller.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list contracts", "error", err, "profile_id", caller.ID)
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	resp := make([]contractResponse, len(contracts))
	for i, c := range contracts {
		resp[i] = toResponse(c)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
