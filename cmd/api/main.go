package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/leadgenie/leadgenie/internal/api"
	"github.com/leadgenie/leadgenie/internal/chatbot"
	"github.com/leadgenie/leadgenie/internal/config"
	"github.com/leadgenie/leadgenie/internal/llm"
	"github.com/leadgenie/leadgenie/internal/observability"
	"github.com/leadgenie/leadgenie/internal/repository/memory"
	"github.com/leadgenie/leadgenie/internal/scraper"
	"github.com/leadgenie/leadgenie/internal/session"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.GetLogLevel())
	defer logger.Sync()

	logger.Info("Starting leadgenie API",
		zap.String("addr", cfg.Server.Addr()),
		zap.Bool("llm_configured", cfg.OpenRouter.APIKey != ""),
	)
	if cfg.OpenRouter.APIKey == "" {
		logger.Warn("OPENROUTER_API_KEY not set; chat answers will be degraded, scraping still works")
	}

	store := memory.NewStore()
	registry := chatbot.NewRegistry()
	llmClient := llm.New(cfg.OpenRouter, logger)
	sc := scraper.New(cfg.Scraper, logger)
	sessions := session.NewManager(store, cfg.Chat.CaptureAfterQuestions)
	metrics := observability.NewMetrics("leadgenie")
	llmClient.SetObserver(metrics)

	router := api.NewRouter(api.RouterConfig{
		Store:      store,
		Registry:   registry,
		Sessions:   sessions,
		Scraper:    sc,
		LLM:        llmClient,
		ChatConfig: cfg.Chat,
		Metrics:    metrics,
		Logger:     logger,
		EnableCORS: true,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API server listening", zap.String("addr", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Fatal("Server error", zap.Error(err))

	case sig := <-shutdown:
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown failed, forcing close", zap.Error(err))
			server.Close()
		}

		logger.Info("Server stopped gracefully")
	}
}

// initLogger creates a configured zap logger
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := config.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	return logger
}
