package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/storage/redis/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"samvidhan/internal/answer"
	"samvidhan/internal/config"
	"samvidhan/internal/handlers"
	"samvidhan/internal/logger"
	"samvidhan/internal/metrics"
	"samvidhan/internal/provider"
	"samvidhan/internal/server"
	"samvidhan/internal/topic"
)

func main() {
	ctx := context.Background()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}
	cfg := config.Load()

	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	yamlCfg, err := config.LoadYAMLConfig(cfg.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", cfg.ConfigFile, err)
	}

	gate, err := topic.NewGate(yamlCfg.KeywordsOr(topic.DefaultKeywords))
	if err != nil {
		log.Fatalf("Failed to build topic gate: %v", err)
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(reg)

	gemini := provider.NewGemini(ctx, provider.GeminiConfig{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	})
	answers := answer.NewService(gate, gemini, answer.WithObserver(recorder.Observe))

	// Session storage - in memory unless a shared Redis is configured
	var storage fiber.Storage
	checks := map[string]handlers.ReadyFunc{}
	if cfg.SessionRedisURL != "" {
		store := redis.New(redis.Config{URL: cfg.SessionRedisURL})
		defer store.Close()
		storage = store
		checks["session storage"] = func(ctx context.Context) error {
			return store.Conn().Ping(ctx).Err()
		}
		slog.Info("using redis session storage")
	}

	srv := server.New(cfg, storage)
	srv.RegisterRoutes(server.Deps{
		Answers:     answers,
		Page:        handlers.NewPageData(yamlCfg),
		Gatherer:    reg,
		ReadyChecks: checks,
	})

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.ServerAddr, "model", gemini.Model(), "keywords", len(gate.Keywords()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	slog.Info("server exited")
}
