package balance

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigledger/internal/balance"
)

type Handler struct {
	svc *balance.Service
}

func NewHandler(svc *balance.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/deposit/{userId}", h.deposit)
}

type depositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	newBalance, err := h.svc.Deposit(r.Context(), clientID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, balance.ErrInvalidAmount):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, balance.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, balance.ErrOverLimit):
			w.WriteHeader(http.StatusConflict)
		default:
			slog.ErrorContext(r.Context(), "failed to deposit", "error", err, "client_id", clientID)
			w.WriteHeader(http.StatusInternalServerError)
		}

		return
	}

	slog.InfoContext(r.Context(), "deposit applied",
		"client_id", clientID,
		"amount", req.Amount.String(),
		"balance", newBalance.String(),
	)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(struct{}{}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
