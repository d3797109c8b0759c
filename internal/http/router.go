package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/gigledger/internal/http/admin"
	"github.com/MrJamesThe3rd/gigledger/internal/http/balance"
	"github.com/MrJamesThe3rd/gigledger/internal/http/contract"
	"github.com/MrJamesThe3rd/gigledger/internal/http/job"
	ledgerMiddleware "github.com/MrJamesThe3rd/gigledger/internal/http/middleware"
	"github.com/MrJamesThe3rd/gigledger/internal/profile"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	Timeout        time.Duration
	AllowedOrigins []string
	Health         Pinger
}

func New(
	opts Options,
	profiles *profile.Service,
	contractsV1 *contract.Handler,
	jobsV1 *job.Handler,
	balancesV1 *balance.Handler,
	adminV1 *admin.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", ledgerMiddleware.ProfileHeader},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	if opts.Health != nil {
		router.Get("/healthz", healthz(opts.Health))
	}

	router.Group(func(r chi.Router) {
		r.Use(ledgerMiddleware.Profile(profiles))

		r.Route("/contracts", contractsV1.Routes)
		r.Route("/jobs", jobsV1.Routes)
	})

	router.Route("/balances", balancesV1.Routes)

	router.Route("/admin", adminV1.Routes)

	return router
}

func healthz(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := p.PingContext(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
