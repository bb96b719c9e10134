package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omni-inovacoes/omnichatbot/internal/ai"
	"github.com/omni-inovacoes/omnichatbot/internal/api/router"
	"github.com/omni-inovacoes/omnichatbot/internal/chat"
	appconfig "github.com/omni-inovacoes/omnichatbot/internal/config"
	"github.com/omni-inovacoes/omnichatbot/internal/customers"
	"github.com/omni-inovacoes/omnichatbot/internal/identify"
	"github.com/omni-inovacoes/omnichatbot/internal/knowledge"
	"github.com/omni-inovacoes/omnichatbot/internal/observability/metrics"
	"github.com/omni-inovacoes/omnichatbot/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting omnichatbot API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	repo, cleanup := newRepository(cfg, logger)
	defer cleanup()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	chatMetrics := metrics.NewChatMetrics(reg)

	clients := map[ai.ProviderKind]ai.Completer{
		ai.ProviderGemini: ai.NewNotImplementedClient("Gemini"),
		ai.ProviderGrok:   ai.NewNotImplementedClient("Grok"),
		ai.ProviderLocal:  ai.NewLocalClient(cfg.LocalLLMBaseURL),
	}
	if cfg.OpenAIAPIKey != "" {
		clients[ai.ProviderOpenAI] = ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	}
	if cfg.AnthropicAPIKey != "" {
		clients[ai.ProviderAnthropic] = ai.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL)
	}

	aiService := ai.NewService(ai.NewRegistry(clients), cfg.MaxCompletionTokens, chatMetrics, logger)
	catalog := ai.NewCatalog(cfg.LocalLLMBaseURL, logger)

	kb := knowledge.NewCache(cfg.KnowledgeBaseDir, cfg.KnowledgeCacheTTL, logger)
	extractor := identify.NewExtractor(aiService, logger)
	classifier := identify.NewClassifier(aiService, "")

	chatService := chat.NewService(repo, aiService, extractor, classifier, kb, chatMetrics, logger)
	chatHandler := chat.NewHandler(chatService, catalog, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// newRepository connects to Postgres when DATABASE_URL is set and falls
// back to the in-memory store otherwise, so the API runs without a
// database in local development.
func newRepository(cfg *appconfig.Config, logger *logging.Logger) (customers.Repository, func()) {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory customer store")
		return customers.NewMemoryRepository(), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Error("database unreachable", "error", err)
		os.Exit(1)
	}

	repo := customers.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("failed to ensure database schema", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")
	return repo, pool.Close
}
