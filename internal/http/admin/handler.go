package admin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigledger/internal/http/middleware"
	"github.com/MrJamesThe3rd/gigledger/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(middleware.DateRange)
	r.Get("/best-profession", h.bestProfession)
	r.Get("/best-clients", h.bestClients)
}

type professionResponse struct {
	Profession string          `json:"profession"`
	Paid       decimal.Decimal `json:"paid"`
}

type clientResponse struct {
	ID       uuid.UUID       `json:"id"`
	FullName string          `json:"fullName"`
	Paid     decimal.Decimal `json:"paid"`
}

func (h *Handler) bestProfession(w http.ResponseWriter, r *http.Request) {
	rng, ok := middleware.RangeFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	best, err := h.svc.BestProfession(r.Context(), rng)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrNoData):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, report.ErrInvalidRange):
			w.WriteHeader(http.StatusBadRequest)
		default:
			slog.ErrorContext(r.Context(), "failed to compute best profession", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(professionResponse{
		Profession: best.Profession,
		Paid:       best.Paid,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) bestClients(w http.ResponseWriter, r *http.Request) {
	rng, ok := middleware.RangeFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var limit int

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		limit = n
	}

	clients, err := h.svc.BestClients(r.Context(), rng, limit)
	if err != nil {
		if errors.Is(err, report.ErrInvalidLimit) || errors.Is(err, report.ErrInvalidRange) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		slog.ErrorContext(r.Context(), "failed to compute best clients", "error", err)
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	resp := make([]clientResponse, len(clients))
	for i, c := range clients {
		resp[i] = clientResponse{ID: c.ClientID, FullName: c.FullName, Paid: c.Paid}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
