package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mroshb/raffle_api/internal/database"
	"github.com/mroshb/raffle_api/internal/handlers"
	"github.com/mroshb/raffle_api/internal/middleware"
	"github.com/mroshb/raffle_api/internal/services"
	"github.com/mroshb/raffle_api/pkg/logger"
	"github.com/urfave/cli/v2"
)

func startServe(_ *cli.Context) error {
	var s srv
	defer s.close()

	if err := s.loadConfig(); err != nil {
		return err
	}
	if err := s.loadDatabase(); err != nil {
		return err
	}
	if err := database.AutoMigrate(s.db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	s.loadRepos()
	if err := s.ensureAdmin(); err != nil {
		return err
	}
	if err := s.loadStorage(); err != nil {
		return err
	}
	s.loadNotifier()
	s.loadHandlers()

	limiter := middleware.NewRateLimiter(s.cfg.RateLimitPerIP, s.cfg.GetRateLimitWindow())
	defer limiter.Stop()

	server := &http.Server{
		Addr:              ":" + s.cfg.AppPort,
		Handler:           handlers.NewRouter(s.handlers, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server started", "port", s.cfg.AppPort, "env", s.cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-quit:
	}

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

func startMigrate(_ *cli.Context) error {
	var s srv
	defer s.close()

	if err := s.loadConfig(); err != nil {
		return err
	}
	if err := s.loadDatabase(); err != nil {
		return err
	}
	if err := database.AutoMigrate(s.db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Migrations applied")
	return nil
}

func startBootstrapAdmin(_ *cli.Context) error {
	var s srv
	defer s.close()

	if err := s.loadConfig(); err != nil {
		return err
	}
	if err := s.loadDatabase(); err != nil {
		return err
	}
	return s.ensureAdmin()
}

func startExport(cctx *cli.Context) error {
	var s srv
	defer s.close()

	if err := s.loadConfig(); err != nil {
		return err
	}
	if err := s.loadDatabase(); err != nil {
		return err
	}
	s.loadRepos()

	var (
		data []byte
		err  error
	)
	if cctx.Bool("tickets") {
		data, err = services.NewTicketService(s.ticketRepo).ExportTickets(cctx.Context)
	} else {
		data, err = services.NewTransactionService(s.transactionRepo, s.userRepo).ExportTransactions(cctx.Context)
	}
	if err != nil {
		return err
	}

	output := cctx.String("output")
	if output == "" {
		output = "transactions.xlsx"
		if cctx.Bool("tickets") {
			output = "tickets.xlsx"
		}
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	logger.Info("Export written", "file", output, "bytes", len(data))
	return nil
}
