package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/vnmchuo/llm-mock/config"
	"github.com/vnmchuo/llm-mock/internal/catalog"
	"github.com/vnmchuo/llm-mock/internal/classify"
	"github.com/vnmchuo/llm-mock/internal/completion"
	"github.com/vnmchuo/llm-mock/internal/embedding"
	"github.com/vnmchuo/llm-mock/internal/gateway"
	"github.com/vnmchuo/llm-mock/internal/latency"
	"github.com/vnmchuo/llm-mock/internal/metrics"
	"github.com/vnmchuo/llm-mock/internal/telemetry"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// 2. Init telemetry
	shutdownTracer, err := telemetry.InitTracer("llm-mock", cfg.OTELExporterType, cfg.OTELExporterEndpoint)
	if err != nil {
		log.Fatalf("failed to init tracer: %v", err)
	}
	defer shutdownTracer()

	// 3. Build the model catalog
	cat := catalog.New()
	if cfg.Models != nil {
		cat, err = catalog.NewFromModels(cfg.Models)
		if err != nil {
			log.Fatalf("failed to build catalog: %v", err)
		}
	}

	// 4. Build the synthesis pipeline
	classifier := classify.New(cfg.Keywords)
	templates, err := completion.NewTemplates(cfg.Templates, nil)
	if err != nil {
		log.Fatalf("failed to build templates: %v", err)
	}
	sim := latency.New(cfg.Timing, nil)
	completions := completion.New(classifier, templates,
		completion.WithGranularity(completion.Granularity(cfg.StreamGranularity)),
		completion.WithChunkDelay(sim.ChunkDelay()),
	)

	var embedOpts []embedding.Option
	if cfg.DeterministicEmbeddings {
		embedOpts = append(embedOpts, embedding.Deterministic())
	}
	embeddings := embedding.New(embedOpts...)

	// 5. Pick the metrics recorder
	var recorder metrics.Recorder = metrics.NopRecorder{}
	if cfg.EnableMetrics {
		if cfg.RedisAddr != "" {
			rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
			defer rdb.Close()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := rdb.Ping(ctx).Err(); err != nil {
				cancel()
				log.Fatalf("failed to ping redis: %v", err)
			}
			cancel()
			logger.Info("redis connected", "addr", cfg.RedisAddr)
			recorder = metrics.NewRedisRecorder(rdb)
		} else {
			recorder = metrics.NewMemoryRecorder()
		}
	}

	// 6. Wire the HTTP surface
	tracer := otel.GetTracerProvider().Tracer("llm-mock")
	handler := gateway.NewHandler(cat, completions, embeddings, sim, recorder, tracer, cfg.APIKey)

	opts := gateway.RouterOptions{}
	if cfg.LogRequests {
		opts.Logger = gateway.RequestLogger(logger, cfg.LogResponses)
	}
	if cfg.EnableMetrics {
		opts.Recorder = recorder
	}
	router := handler.NewRouter(opts)

	addr := cfg.Host + ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	printBanner(logger, cfg)

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("mock server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	logger.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func printBanner(logger *slog.Logger, cfg *config.Config) {
	logger.Info("mock OpenAI API server",
		"version", gateway.Version,
		"api_key", cfg.APIKey,
		"url", "http://localhost:"+cfg.Port,
	)
	logger.Info("endpoints",
		"models", "GET /v1/models",
		"chat_completions", "POST /v1/chat/completions",
		"embeddings", "POST /v1/embeddings",
		"health", "GET /health",
	)
	logger.Info("example",
		"curl", "curl -H 'Authorization: Bearer "+cfg.APIKey+"' http://localhost:"+cfg.Port+"/v1/models",
	)
}
