package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"auracx/internal/config"
	"auracx/internal/intent"
	"auracx/internal/knowledge"
	"auracx/internal/llm"
	"auracx/internal/logging"
	"auracx/internal/observability"
	"auracx/internal/orchestrator"
	"auracx/internal/pii"
	"auracx/internal/rag"
	"auracx/internal/server/httpapi"
)

var version = "1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "auracx-server",
		Short:   "AuraCX customer service orchestration server",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))
	logger := logging.NewComponentLogger("Main")
	logger.Info("Starting AuraCX server (env: %s, port: %d)", cfg.Environment, cfg.Port)

	metrics, err := observability.NewMetrics()
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	client := buildLLMClient(cfg, metrics, logger)

	index, corpusSize, err := buildIndex(cfg, logger)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	logger.Info("Knowledge index ready with %d documents", corpusSize)

	stores := knowledge.NewStoreRepository(knowledge.FixtureStores())
	inventory := knowledge.NewInventoryRepository(knowledge.FixtureInventory())
	orders := knowledge.NewOrderRepository(knowledge.FixtureOrders())
	offers := knowledge.NewOffersRepository(knowledge.FixtureOffers())

	dispatcher := orchestrator.NewDispatcher(stores, inventory, orders, offers,
		logging.NewComponentLogger("Dispatcher"))
	synthesizer := orchestrator.NewSynthesizer(client, logging.NewComponentLogger("Synthesizer"))
	pipeline := rag.NewPipeline(client, index, rag.PipelineConfig{TopK: cfg.TopK},
		logging.NewComponentLogger("Pipeline"), metrics)

	orch := orchestrator.New(
		pii.NewMasker(),
		intent.NewClassifier(client, logging.NewComponentLogger("Classifier")),
		dispatcher,
		synthesizer,
		pipeline,
		orchestrator.Config{ConfidenceThreshold: cfg.ConfidenceThreshold},
		logging.NewComponentLogger("Orchestrator"),
		metrics,
	)

	server := httpapi.NewServer(cfg, orch, metrics, logging.NewComponentLogger("HTTP"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx)
}

// buildLLMClient returns the configured backend, or a mock when no API key
// is set so the server can run for local development.
func buildLLMClient(cfg *config.Config, metrics *observability.Metrics, logger logging.Logger) llm.Client {
	if cfg.LLMAPIKey == "" {
		logger.Warn("No API key configured, using mock LLM backend")
		return llm.NewMockClient()
	}

	client, err := llm.NewOpenAIClient(cfg.LLMModel, llm.Config{
		APIKey:     cfg.LLMAPIKey,
		BaseURL:    cfg.LLMBaseURL,
		Timeout:    cfg.LLMTimeoutSec,
		MaxRetries: cfg.LLMMaxRetries,
		UsageCallback: func(usage llm.TokenUsage, model string) {
			metrics.ObserveLLMCall(context.Background(), model, usage.PromptTokens, usage.CompletionTokens)
		},
	})
	if err != nil {
		logger.Error("LLM client init failed (%v), using mock backend", err)
		return llm.NewMockClient()
	}
	return client
}

// buildIndex loads the interaction corpus and indexes it. A missing corpus
// file yields an empty index; low-confidence queries will then escalate.
func buildIndex(cfg *config.Config, logger logging.Logger) (rag.Index, int, error) {
	docs, err := rag.LoadCorpus(cfg.CorpusPath)
	if err != nil {
		return nil, 0, fmt.Errorf("load corpus %s: %w", cfg.CorpusPath, err)
	}
	if docs == nil {
		logger.Warn("Corpus file %s not found, starting with empty index", cfg.CorpusPath)
	}

	embedder, err := rag.NewLexicalEmbedder(rag.EmbedderConfig{})
	if err != nil {
		return nil, 0, err
	}
	index, err := rag.NewIndex("customer-interactions", embedder)
	if err != nil {
		return nil, 0, err
	}
	if len(docs) > 0 {
		if err := index.Add(context.Background(), docs); err != nil {
			return nil, 0, fmt.Errorf("index corpus: %w", err)
		}
	}
	return index, len(docs), nil
}
