package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/loanscope/internal/adapters/http/stub"
	"github.com/okian/loanscope/internal/config"
	"github.com/okian/loanscope/internal/domain/scoring"
	"github.com/okian/loanscope/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithLevel(cfg.LogLevel)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Named("stub-scorer")

	minLatency, maxLatency := cfg.StubLatency()
	mux := http.NewServeMux()
	stub.NewHandler(
		scoring.NewInMemoryScorer(scoring.WithLatencyRange(minLatency, maxLatency)),
		stub.WithLogger(log),
	).Register(mux)

	srv := &http.Server{
		Addr:              cfg.StubAddr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting stub scoring service",
			logger.String("addr", cfg.StubAddr),
			logger.String("path", stub.PredictPath),
			logger.Duration("minLatency", minLatency),
			logger.Duration("maxLatency", maxLatency),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "stub server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "stub shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "stub scoring service stopped")
}
