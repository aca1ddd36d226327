package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"mindwell/internal/app"
	"mindwell/internal/config"
	"mindwell/internal/ratelimit"
	"mindwell/internal/server"
	"mindwell/internal/util"
	"mindwell/pkg/ai"
	"mindwell/pkg/events"
	"mindwell/pkg/quotes"
	"mindwell/pkg/storage"
	"mindwell/pkg/store"
)

func main() {
	configPath := flag.String("config", config.ConfigPath, "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := util.InitLogger(cfg.LogLevel)

	dataStore, err := buildStore(cfg)
	if err != nil {
		util.Fatal("failed to init store", "backend", cfg.StorageBackend, "err", err)
	}

	sessions, err := buildSessionStore(cfg)
	if err != nil {
		util.Fatal("failed to init session store", "backend", cfg.SessionBackend, "err", err)
	}

	generator := buildGenerator(cfg)
	if generator == nil {
		slog.Warn("no generation provider configured; using static fallbacks")
	}

	var publisher events.Publisher
	if cfg.AMQPURL != "" {
		moodPublisher, err := events.NewMoodPublisher(cfg.AMQPURL)
		if err != nil {
			util.Fatal("failed to connect to amqp", "err", err)
		}
		defer moodPublisher.Close()
		publisher = moodPublisher
	}

	var exports storage.ObjectStore
	if cfg.MinioEndpoint != "" {
		minioStore, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			util.Fatal("failed to init object store", "err", err)
		}
		exports = minioStore
	}

	var limiter *ratelimit.FixedWindowLimiter
	if cfg.ChatRateLimitPerMinute > 0 {
		limiter, err = ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, "mindwell:ratelimit", cfg.ChatRateLimitPerMinute, time.Minute)
		if err != nil {
			util.Fatal("failed to init rate limiter", "err", err)
		}
	}

	appCore, err := app.New(app.Config{
		Store:            dataStore,
		Generator:        generator,
		Publisher:        publisher,
		Exports:          exports,
		Quotes:           quotes.NewClient(cfg.QuotesBaseURL),
		ReplyWindow:      cfg.ReplyWindow,
		ClassifyTurns:    cfg.ClassifyTurns,
		IntensityScoring: cfg.IntensityScoring,
	})
	if err != nil {
		util.Fatal("failed to init app", "err", err)
	}

	httpServer := server.New(server.Config{
		App:      appCore,
		Sessions: sessions,
		Limiter:  limiter,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("mindwell server listening", "addr", addr, "storage", cfg.StorageBackend, "provider", cfg.Provider)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}

func buildStore(cfg config.FileConfig) (store.Store, error) {
	switch cfg.StorageBackend {
	case "file":
		return store.NewFileStore(cfg.DataDir)
	case "postgres":
		return store.NewGormStore(cfg.DatabaseURL)
	default:
		return store.NewMemoryStore(), nil
	}
}

func buildSessionStore(cfg config.FileConfig) (store.SessionStore, error) {
	ttl := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	if cfg.SessionBackend == "redis" {
		return store.NewRedisSessionStore(cfg.RedisAddr, cfg.RedisPassword, ttl), nil
	}
	return store.NewJWTSessionStore(cfg.JWTSecret, ttl)
}

func buildGenerator(cfg config.FileConfig) ai.Generator {
	switch cfg.Provider {
	case "openai-compat":
		return ai.NewOpenAICompatGenerator(cfg.GenerationBaseURL, cfg.GenerationAPIKey, cfg.GenerationModel)
	case "gemini":
		gen, err := ai.NewGeminiGenerator(cfg.GenerationAPIKey, cfg.GenerationModel)
		if err != nil {
			util.Fatal("failed to init gemini generator", "err", err)
		}
		return gen
	case "ollama":
		return ai.NewOllamaGenerator(cfg.GenerationBaseURL, cfg.GenerationModel)
	default:
		return nil
	}
}
