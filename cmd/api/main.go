package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mikopa/backend/internal/config"
	"github.com/mikopa/backend/internal/db"
	clientdomain "github.com/mikopa/backend/internal/domain/client"
	loandomain "github.com/mikopa/backend/internal/domain/loan"
	"github.com/mikopa/backend/internal/http/handlers"
	"github.com/mikopa/backend/internal/observability"
	postgresrepo "github.com/mikopa/backend/internal/repository/postgres"
	"github.com/mikopa/backend/internal/server"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect postgres", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	clientRepo := postgresrepo.NewClientRepository(pool)
	loanRepo := postgresrepo.NewLoanRepository(pool)
	clientService := clientdomain.NewService(clientRepo)
	loanService := loandomain.NewService(clientRepo, loanRepo)

	r := server.NewRouter(cfg, logger, server.Dependencies{
		Pinger:        pool,
		ClientHandler: handlers.NewClientHandler(clientService, logger),
		LoanHandler:   handlers.NewLoanHandler(loanService, logger),
	})
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("api server starting", "addr", cfg.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)
	logger.Info("api server stopped")
}
