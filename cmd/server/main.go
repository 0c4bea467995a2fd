package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vibin/chat-relay/config"
	httpHandler "github.com/vibin/chat-relay/internal/adapters/primary/http"
	"github.com/vibin/chat-relay/internal/adapters/secondary/breaker"
	"github.com/vibin/chat-relay/internal/adapters/secondary/cache"
	"github.com/vibin/chat-relay/internal/adapters/secondary/llm"
	"github.com/vibin/chat-relay/internal/core/services"
	"github.com/vibin/chat-relay/internal/logger"
	"github.com/vibin/chat-relay/internal/metrics"
)

func main() {
	debugMode := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Setup logger
	logLevel := slog.LevelInfo
	if *debugMode {
		logLevel = slog.LevelDebug
	}
	log := logger.New(logLevel, os.Stdout)
	log.Info("Starting chat relay")

	// Load configuration from the environment
	cfg := config.Load()

	// Initialize adapters
	log.Info("Initializing adapters")

	providers := services.Providers{
		Task: llm.NewTaskAdapter(),
	}

	if cfg.OpenAI.Enabled {
		adapter, err := llm.NewOpenAIAdapter(&cfg.OpenAI, cfg.Adapter.Retries, log)
		if err != nil {
			log.Warn("OpenAI tier disabled", "error", err)
		} else {
			providers.Primary = adapter
		}
	}

	if cfg.HuggingFace.Enabled {
		adapter, err := llm.NewHuggingFaceAdapter(&cfg.HuggingFace, cfg.Adapter.Retries, log)
		if err != nil {
			log.Warn("Hugging Face tier disabled", "error", err)
		} else {
			providers.FreeTier = adapter
		}
	}

	claudeAdapter, err := llm.NewAnthropicAdapter(&cfg.Claude, cfg.Adapter.Retries, log)
	if err != nil {
		log.Warn("Anthropic tier disabled, using deterministic fallback", "error", err)
	} else {
		providers.Default = claudeAdapter
	}

	// Breaker store: redis-backed when REDIS_URL is set, in-process otherwise
	breakerStore, redisStore := breaker.New(&cfg.Redis, log)

	// Reply cache for the default tier
	replyCache := cache.New(cfg.Cache.MaxSize, cfg.Cache.TTL)

	// Metrics registry
	m := metrics.New()

	// Create chat service
	chatService := services.NewChatService(providers, breakerStore, replyCache, m, cfg, log)

	// Create HTTP handler; the redis store doubles as the readiness pinger
	var ready httpHandler.Pinger
	if redisStore != nil {
		ready = redisStore
	}
	handler := httpHandler.NewHandler(chatService, cfg, m, ready, log)

	// Create HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // Longer timeout for LLM responses
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Create a channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Block until a signal is received
	<-stop
	log.Info("Shutting down server...")

	// Create a deadline context for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server exited")
}
