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
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dompet-app/dompet/internal/advisor"
	advisorStore "github.com/dompet-app/dompet/internal/advisor/store"
	"github.com/dompet-app/dompet/internal/budget"
	budgetStore "github.com/dompet-app/dompet/internal/budget/store"
	"github.com/dompet-app/dompet/internal/category"
	categoryStore "github.com/dompet-app/dompet/internal/category/store"
	"github.com/dompet-app/dompet/internal/config"
	"github.com/dompet-app/dompet/internal/database"
	"github.com/dompet-app/dompet/internal/export"
	"github.com/dompet-app/dompet/internal/goal"
	goalStore "github.com/dompet-app/dompet/internal/goal/store"
	dompetHttp "github.com/dompet-app/dompet/internal/http"
	advisorHandler "github.com/dompet-app/dompet/internal/http/advisor"
	budgetHandler "github.com/dompet-app/dompet/internal/http/budget"
	categoryHandler "github.com/dompet-app/dompet/internal/http/category"
	exportHandler "github.com/dompet-app/dompet/internal/http/export"
	goalHandler "github.com/dompet-app/dompet/internal/http/goal"
	importHandler "github.com/dompet-app/dompet/internal/http/importcsv"
	matchingHandler "github.com/dompet-app/dompet/internal/http/matching"
	"github.com/dompet-app/dompet/internal/http/middleware"
	profileHandler "github.com/dompet-app/dompet/internal/http/profile"
	sessionHandler "github.com/dompet-app/dompet/internal/http/session"
	txHandler "github.com/dompet-app/dompet/internal/http/transaction"
	walletHandler "github.com/dompet-app/dompet/internal/http/wallet"
	"github.com/dompet-app/dompet/internal/importer/statement"
	"github.com/dompet-app/dompet/internal/logging"
	"github.com/dompet-app/dompet/internal/matching"
	matchingStore "github.com/dompet-app/dompet/internal/matching/store"
	"github.com/dompet-app/dompet/internal/profile"
	profileStore "github.com/dompet-app/dompet/internal/profile/store"
	"github.com/dompet-app/dompet/internal/querycache"
	"github.com/dompet-app/dompet/internal/spending"
	"github.com/dompet-app/dompet/internal/transaction"
	txStore "github.com/dompet-app/dompet/internal/transaction/store"
	"github.com/dompet-app/dompet/internal/wallet"
	walletStore "github.com/dompet-app/dompet/internal/wallet/store"
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

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	if cfg.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(cfg.ConnectionString()); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	var (
		transactionService = transaction.NewService(txStore.New(db))
		budgetService      = budget.NewService(budgetStore.New(db))
		walletService      = wallet.NewService(walletStore.New(db))
		categoryService    = category.NewService(categoryStore.New(db))
		goalService        = goal.NewService(goalStore.New(db))
		profileService     = profile.NewService(profileStore.New(db))
		matchingService    = matching.NewService(matchingStore.New(db))
		exportService      = export.NewService(transactionService)
	)

	sessions := spending.NewSessions(transactionService, querycache.Options{
		Name:        "spending",
		MaxAge:      cfg.Spending.MaxAge,
		Concurrency: cfg.Spending.RefetchConcurrency,
	}, spending.CoordinatorOptions{
		Logger:           logger,
		SafetyNetRefetch: cfg.Spending.SafetyNetRefetch,
	})
	defer sessions.Close()

	var model advisor.Model
	if cfg.Gemini.APIKey != "" {
		gemini, err := advisor.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return fmt.Errorf("creating advisor model: %w", err)
		}

		model = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, advisor questions are disabled")
	}

	advisorService := advisor.NewService(advisorStore.New(db), model, &advisor.Collector{
		Profiles:     profileService,
		Wallets:      walletService,
		Transactions: transactionService,
		Budgets:      budgetService,
		Goals:        goalService,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(querycache.Collectors()...)
	registry.MustRegister(spending.Collectors()...)
	registry.MustRegister(middleware.Collectors()...)

	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.JWTAudience, profileService)

	router := dompetHttp.New(dompetHttp.Handlers{
		Transactions: txHandler.NewHandler(transactionService, sessions),
		Budgets:      budgetHandler.NewHandler(budgetService, sessions),
		Wallets:      walletHandler.NewHandler(walletService),
		Categories:   categoryHandler.NewHandler(categoryService),
		Goals:        goalHandler.NewHandler(goalService),
		Profile:      profileHandler.NewHandler(profileService),
		Advisor:      advisorHandler.NewHandler(advisorService, sessions, cfg.Advisor.HistoryLimit),
		Import:       importHandler.NewHandler(statement.NewParser(), matchingService, sessions),
		Export:       exportHandler.NewHandler(exportService),
		Matching:     matchingHandler.NewHandler(matchingService),
		Session:      sessionHandler.NewHandler(sessions, auth),
	}, dompetHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Auth:           auth,
		Gatherer:       registry,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	return nil
}
