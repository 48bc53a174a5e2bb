package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"

	"github.com/Xausdorf/vietqr-hub/api/qrpb"
	grpchandler "github.com/Xausdorf/vietqr-hub/internal/delivery/grpc"
	"github.com/Xausdorf/vietqr-hub/internal/infrastructure/config"
	"github.com/Xausdorf/vietqr-hub/internal/infrastructure/metrics"
	"github.com/Xausdorf/vietqr-hub/internal/infrastructure/postgres"
	"github.com/Xausdorf/vietqr-hub/internal/usecase/issueqr"
	"github.com/Xausdorf/vietqr-hub/internal/vietqr"
	"github.com/Xausdorf/vietqr-hub/internal/vietqr/bankdir"
)

const (
	dbMaxConns        = 10
	dbMinConns        = 2
	dbMaxConnLifetime = 30 * time.Minute
	dbMaxConnIdleTime = 5 * time.Minute

	metricsReadHeaderTimeout = 5 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, config.Load(), logger); err != nil {
		logger.Error("core stopped", "error", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	banks, err := loadBanks(cfg.BankDirectoryFile)
	if err != nil {
		return fmt.Errorf("load bank directory %q: %w", cfg.BankDirectoryFile, err)
	}

	pool, err := initDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer pool.Close()

	m, err := metrics.New("core", metrics.NewRegistry())
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	issueUC := issueqr.NewUseCase(postgres.NewUnitOfWork(pool), vietqr.NewEncoder(banks))

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		grpchandler.RecoveryInterceptor(logger),
		grpchandler.LoggingInterceptor(logger),
		grpchandler.MetricsInterceptor(m),
	))
	qrpb.RegisterQRServiceServer(srv, grpchandler.NewHandler(issueUC, m, logger))

	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           m.Handler(),
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics serve failed", "error", err)
		}
	}()
	defer metricsSrv.Close()

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GRPCAddr, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("gRPC server starting", "addr", cfg.GRPCAddr, "banks", len(banks.Banks()))
		serveErr <- srv.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
		srv.GracefulStop()
		return nil
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	}
}

func loadBanks(path string) (*bankdir.Directory, error) {
	if path == "" {
		return bankdir.Default(), nil
	}
	return bankdir.Load(path)
}

func initDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}

	poolCfg.MaxConns = dbMaxConns
	poolCfg.MinConns = dbMinConns
	poolCfg.MaxConnLifetime = dbMaxConnLifetime
	poolCfg.MaxConnIdleTime = dbMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
