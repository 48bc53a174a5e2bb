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

	httpdelivery "github.com/Xausdorf/vietqr-hub/internal/delivery/http"
	"github.com/Xausdorf/vietqr-hub/internal/infrastructure/config"
	"github.com/Xausdorf/vietqr-hub/internal/infrastructure/grpcclient"
	"github.com/Xausdorf/vietqr-hub/internal/infrastructure/metrics"
	"github.com/Xausdorf/vietqr-hub/internal/infrastructure/qrgenerator"
	"github.com/Xausdorf/vietqr-hub/internal/usecase/renderqr"
	"github.com/Xausdorf/vietqr-hub/internal/vietqr"
	"github.com/Xausdorf/vietqr-hub/internal/vietqr/bankdir"
)

const (
	readHeaderTimeout     = 5 * time.Second
	gracefulShutdownDelay = 5 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, config.Load(), logger); err != nil {
		logger.Error("gateway stopped", "error", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	banks := bankdir.Default()
	if cfg.BankDirectoryFile != "" {
		loaded, err := bankdir.Load(cfg.BankDirectoryFile)
		if err != nil {
			return fmt.Errorf("load bank directory %q: %w", cfg.BankDirectoryFile, err)
		}
		banks = loaded
	}

	m, err := metrics.New("gateway", metrics.NewRegistry())
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	payloadClient, err := grpcclient.NewClient(cfg.CoreGRPCAddr)
	if err != nil {
		return fmt.Errorf("dial core: %w", err)
	}
	defer payloadClient.Close()

	renderUC := renderqr.NewUseCase(
		payloadClient,
		qrgenerator.NewGenerator(cfg.QRCodeSize),
		vietqr.NewEncoder(banks),
	)
	router := httpdelivery.NewRouter(httpdelivery.NewHandler(renderUC, banks, m, logger), m)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "core", cfg.CoreGRPCAddr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}

	logger.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownDelay)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
