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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/fjod/storefront/internal/config"
	"github.com/fjod/storefront/internal/events"
	h "github.com/fjod/storefront/internal/http"
	"github.com/fjod/storefront/internal/idgen"
	"github.com/fjod/storefront/internal/logger"
	"github.com/fjod/storefront/internal/storefront"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer lg.Sync()
	zap.ReplaceGlobals(lg)

	ctx := context.Background()

	store, err := cfg.OpenStore(ctx)
	if err != nil {
		lg.Fatal("failed to open store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	lg.Info("store opened", zap.String("backend", cfg.StoreBackend))

	bus := events.NewBus()
	if len(cfg.KafkaBrokers) > 0 {
		notifier := events.NewKafkaNotifier(events.NewKafkaWriter(cfg.KafkaTopic, cfg.KafkaBrokers...), lg)
		defer notifier.Close()
		bus.Subscribe(notifier.Handle)
		lg.Info("publishing state changes to kafka",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic))
	}

	sf, err := storefront.Open(ctx, store, storefront.Options{
		IDs:    idgen.New(time.Now),
		Clock:  time.Now,
		Bus:    bus,
		Logger: lg,
	})
	if err != nil {
		lg.Fatal("failed to open storefront", zap.Error(err))
	}

	router := h.NewRouter(sf, lg, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		lg.Info("storefront starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("server forced to shutdown", zap.Error(err))
	}
	if err := sf.Close(shutdownCtx); err != nil {
		lg.Error("failed to save state on exit", zap.Error(err))
	}

	lg.Info("server exited")
}
