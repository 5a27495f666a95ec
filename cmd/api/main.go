package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zhouzirui/flight-insights/backend/internal/config"
	"github.com/zhouzirui/flight-insights/backend/internal/handler"
	"github.com/zhouzirui/flight-insights/backend/internal/handler/page"
	"github.com/zhouzirui/flight-insights/backend/internal/logging"
	"github.com/zhouzirui/flight-insights/backend/internal/service/insights"
	"github.com/zhouzirui/flight-insights/backend/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if envErr != nil {
		logger.Warn("failed to load .env file, continuing with system environment variables only", zap.Error(envErr))
	}

	answerer, err := insights.New(ctx, cfg, logger.Named("answerer"))
	switch {
	case errors.Is(err, insights.ErrNoAnswerer):
		logger.Warn("no insights backend configured, /insights will answer 503 - set INSIGHTS_UPSTREAM_URL or LLM credentials")
	case err != nil:
		logger.Warn("failed to initialize insights backend, /insights will answer 503", zap.Error(err))
	}

	pageHandler := page.New(web.Pages(), logger.Named("page"))
	if cfg.Server.StaticDir != "" {
		logger.Info("serving page from disk", zap.String("dir", cfg.Server.StaticDir))
		pageHandler = page.FromDir(cfg.Server.StaticDir, logger.Named("page"))
	}

	router := handler.NewRouter(pageHandler, answerer, logger)

	startServer(ctx, cfg.Server, router, logger)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *zap.Logger) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("flight insights listening", zap.String("addr", addr))
	if err := runServer(ctx, srv); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
