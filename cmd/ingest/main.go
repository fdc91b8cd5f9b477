package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"paperqa/internal/config"
	"paperqa/internal/ingest"
	"paperqa/internal/llm"
	"paperqa/internal/storage"
	"paperqa/internal/titles"
	"paperqa/internal/vectorstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := context.Background()

	// Title cache database
	db, err := storage.New(cfg.TitleDBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Title cache initialized", "path", cfg.TitleDBPath)

	titleRepo := storage.NewTitleRepo(db)
	resolver := titles.NewResolver(
		titles.NewArxivClient(""),
		titles.NewSemanticScholarClient(""),
	)

	// Vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)

	pipeline := ingest.NewPipeline(
		cfg.PapersDir,
		titleRepo,
		resolver,
		embedder,
		vectorStore,
		cfg.QdrantCollection,
		cfg.ChunkSize,
		cfg.ChunkOverlap,
		logger,
	)

	stats, err := pipeline.Run(ctx)
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}

	slog.Info("Ingestion finished",
		"papers_processed", stats.PapersProcessed,
		"papers_skipped", stats.PapersSkipped,
		"chunks_indexed", stats.ChunksIndexed,
	)
	if len(stats.NeedsReview) > 0 {
		slog.Warn("Some titles need manual review", "filenames", stats.NeedsReview)
	}
}
