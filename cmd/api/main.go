package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/gigledger/internal/balance"
	balanceStore "github.com/MrJamesThe3rd/gigledger/internal/balance/store"
	"github.com/MrJamesThe3rd/gigledger/internal/config"
	"github.com/MrJamesThe3rd/gigledger/internal/contract"
	contractStore "github.com/MrJamesThe3rd/gigledger/internal/contract/store"
	"github.com/MrJamesThe3rd/gigledger/internal/database"
	ledgerHttp "github.com/MrJamesThe3rd/gigledger/internal/http"
	adminHandler "github.com/MrJamesThe3rd/gigledger/internal/http/admin"
	balanceHandler "github.com/MrJamesThe3rd/gigledger/internal/http/balance"
	contractHandler "github.com/MrJamesThe3rd/gigledger/internal/http/contract"
	jobHandler "github.com/MrJamesThe3rd/gigledger/internal/http/job"
	"github.com/MrJamesThe3rd/gigledger/internal/job"
	jobStore "github.com/MrJamesThe3rd/gigledger/internal/job/store"
	"github.com/MrJamesThe3rd/gigledger/internal/payment"
	paymentStore "github.com/MrJamesThe3rd/gigledger/internal/payment/store"
	"github.com/MrJamesThe3rd/gigledger/internal/profile"
	profileStore "github.com/MrJamesThe3rd/gigledger/internal/profile/store"
	"github.com/MrJamesThe3rd/gigledger/internal/report"
	reportStore "github.com/MrJamesThe3rd/gigledger/internal/report/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(cfg.Logger())

	// Amounts go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	var (
		profileService  = profile.NewService(profileStore.New(db))
		contractService = contract.NewService(contractStore.New(db))
		jobService      = job.NewService(jobStore.New(db))
		paymentService  = payment.NewService(paymentStore.New(db))
		balanceService  = balance.NewService(balanceStore.New(db))
		reportService   = report.NewService(reportStore.New(db))
	)

	var (
		contractH = contractHandler.NewHandler(contractService)
		jobH      = jobHandler.NewHandler(jobService, paymentService)
		balanceH  = balanceHandler.NewHandler(balanceService)
		adminH    = adminHandler.NewHandler(reportService)
	)

	router := ledgerHttp.New(
		ledgerHttp.Options{
			Timeout:        cfg.Server.Timeout,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Health:         db,
		},
		profileService, contractH, jobH, balanceH, adminH,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
