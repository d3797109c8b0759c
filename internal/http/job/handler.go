package job

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigledger/internal/http/middleware"
	"github.com/MrJamesThe3rd/gigledger/internal/job"
	"github.com/MrJamesThe3rd/gigledger/internal/payment"
)

type Handler struct {
	jobs     *job.Service
	payments *payment.Service
}

func NewHandler(jobs *job.Service, payments *payment.Service) *Handler {
	return &Handler{jobs: jobs, payments: payments}
}

// Routes expects middleware.Profile to run first.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/unpaid", h.listUnpaid)
	r.Post("/{job_id}/pay", h.pay)
}

type jobResponse struct {
	ID          uuid.UUID       `json:"id"`
	ContractID  uuid.UUID       `json:"contract_id"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Paid        bool            `json:"paid"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (h *Handler) listUnpaid(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.ProfileFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	jobs, err := h.jobs.ListUnpaid(r.Context(), caller.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list unpaid jobs", "error", err, "profile_id", caller.ID)
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	resp := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		resp[i] = jobResponse{
			ID:          j.ID,
			ContractID:  j.ContractID,
			Description: j.Description,
			Price:       j.Price,
			Paid:        j.Paid,
			PaymentDate: j.PaymentDate,
			CreatedAt:   j.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// pay answers with a bare status: 404 when the caller cannot pay this job
// (unknown, already paid or someone else's), 409 when funds are short.
func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.ProfileFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	jobID, err := uuid.Parse(chi.URLParam(r, "job_id"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	receipt, err := h.payments.Pay(r.Context(), jobID, caller.ID)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, payment.ErrInsufficientFunds):
			w.WriteHeader(http.StatusConflict)
		default:
			slog.ErrorContext(r.Context(), "failed to pay job", "error", err, "job_id", jobID, "client_id", caller.ID)
			w.WriteHeader(http.StatusInternalServerError)
		}

		return
	}

	slog.InfoContext(r.Context(), "job paid",
		"job_id", receipt.JobID,
		"client_id", receipt.ClientID,
		"contractor_id", receipt.ContractorID,
		"amount", receipt.Amount.String(),
	)

	w.WriteHeader(http.StatusOK)
}
