package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dompet-app/dompet/internal/http/advisor"
	"github.com/dompet-app/dompet/internal/http/budget"
	"github.com/dompet-app/dompet/internal/http/category"
	"github.com/dompet-app/dompet/internal/http/export"
	"github.com/dompet-app/dompet/internal/http/goal"
	"github.com/dompet-app/dompet/internal/http/importcsv"
	"github.com/dompet-app/dompet/internal/http/matching"
	"github.com/dompet-app/dompet/internal/http/middleware"
	"github.com/dompet-app/dompet/internal/http/profile"
	"github.com/dompet-app/dompet/internal/http/respond"
	"github.com/dompet-app/dompet/internal/http/session"
	"github.com/dompet-app/dompet/internal/http/transaction"
	"github.com/dompet-app/dompet/internal/http/wallet"
)

// Handlers groups the v1 resource handlers.
type Handlers struct {
	Transactions *transaction.Handler
	Budgets      *budget.Handler
	Wallets      *wallet.Handler
	Categories   *category.Handler
	Goals        *goal.Handler
	Profile      *profile.Handler
	Advisor      *advisor.Handler
	Import       *importcsv.Handler
	Export       *export.Handler
	Matching     *matching.Handler
	Session      *session.Handler
}

type Options struct {
	AllowedOrigins []string
	Auth           *middleware.Authenticator
	Gatherer       prometheus.Gatherer
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(middleware.Metrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(opts.Auth.Middleware)

		r.Route("/transactions", func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))
			h.Transactions.Routes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))
			h.Budgets.Routes(r)
		})

		r.Route("/wallets", func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))
			h.Wallets.Routes(r)
		})

		r.Route("/categories", h.Categories.Routes)
		r.Route("/goals", h.Goals.Routes)
		r.Route("/profile", h.Profile.Routes)
		r.Route("/advisor", h.Advisor.Routes)
		r.Route("/import", h.Import.Routes)
		r.Route("/export", h.Export.Routes)
		r.Route("/matching", h.Matching.Routes)
		r.Route("/session", h.Session.Routes)
	})

	return router
}
