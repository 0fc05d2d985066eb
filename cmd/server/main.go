package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ruralpay/wallet/docs"
	"github.com/ruralpay/wallet/internal/audit"
	"github.com/ruralpay/wallet/internal/config"
	"github.com/ruralpay/wallet/internal/database"
	"github.com/ruralpay/wallet/internal/handlers"
	"github.com/ruralpay/wallet/internal/logger"
	mW "github.com/ruralpay/wallet/internal/middleware"
	"github.com/ruralpay/wallet/internal/services"
)

// @title Easy Pay Wallet API
// @version 1.0
// @description Wallet balance loading, peer transfers and statements
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg := config.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	if cfg.JWTSecret == "" {
		logger.Log.Fatal("JWT_SECRET_KEY must be set")
	}

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	db := database.InitDatabase()
	defer db.Close()

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	notificationService := services.NewNotificationService(db, redisClient, cfg.Notifications)
	ledgerService := services.NewLedgerService(db, cfg.Limits.MonthlyTransferLimit)
	balanceService := services.NewBalanceService(ledgerService, notificationService, audit.NewAuditLogger(logger.Log))

	handler := newRouter(routerDeps{
		jwtSecret:     cfg.JWTSecret,
		staticDir:     cfg.BanksDir,
		balance:       handlers.NewBalanceHandler(balanceService),
		statements:    handlers.NewStatementHandler(services.NewStatementService(db)),
		notifications: handlers.NewNotificationHandler(notificationService),
		bankAccounts:  handlers.NewBankAccountHandler(services.NewBankAccountService(db)),
		rateLimiter:   mW.NewRateLimiter(redisClient, cfg.Limits),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go notificationService.RunRetryWorker(ctx)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Infof("Server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()

	logger.Log.Info("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server stopped")
}
