package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ruralpay/wallet/internal/handlers"
	"github.com/ruralpay/wallet/internal/metrics"
	mW "github.com/ruralpay/wallet/internal/middleware"
	"github.com/ruralpay/wallet/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
)

type routerDeps struct {
	jwtSecret     string
	staticDir     string
	balance       *handlers.BalanceHandler
	statements    *handlers.StatementHandler
	notifications *handlers.NotificationHandler
	bankAccounts  *handlers.BankAccountHandler
	rateLimiter   *mW.RateLimiter
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(mW.SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Handle(services.BankImagePrefix+"*", http.StripPrefix(services.BankImagePrefix, mW.StaticFileServer(d.staticDir)))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mW.NewAuthMiddleware(d.jwtSecret))

		r.Group(func(r chi.Router) {
			r.Use(d.rateLimiter.Middleware)
			r.With(mW.RequirePermission(mW.PermLoadBalance)).Patch("/balance/load", d.balance.LoadBalance)
			r.With(mW.RequirePermission(mW.PermTransferBalance)).Patch("/balance/transfer", d.balance.TransferBalance)
		})

		r.With(mW.RequirePermission(mW.PermLoadBalance)).Get("/statements/load-fund", d.statements.LoadFundTransactions)
		r.With(mW.RequirePermission(mW.PermLoadBalance)).Get("/statements/load-fund/{id}", d.statements.LoadFundTransaction)
		r.With(mW.RequirePermission(mW.PermFetchTransferStatements)).Get("/statements/balance-transfer", d.statements.BalanceTransferStatements)
		r.With(mW.RequirePermission(mW.PermFetchNotifications)).Get("/notifications", d.notifications.Notifications)
		r.With(mW.RequirePermission(mW.PermFetchLinkedBankAccounts)).Get("/bank-accounts", d.bankAccounts.BankAccounts)
	})

	return r
}
