package rag

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"paperqa/internal/vectorstore"
)

// candidateCount is how many nearest neighbors are pulled from the index
// before the token budget narrows them down.
const candidateCount = 30

// RefusalPhrase is the exact wording the model is instructed to use when the
// retrieved context does not contain the answer. Clients match on it.
const RefusalPhrase = "I cannot find the answer in the provided documents"

// Embedder turns a question into a query vector.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Generator produces a completion for a prompt.
type Generator interface {
	Chat(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Engine answers questions grounded in the indexed corpus.
type Engine interface {
	Ask(ctx context.Context, question string) (*AskResponse, error)
}

type engine struct {
	embedder         Embedder
	vectorStore      vectorstore.VectorStore
	generator        Generator
	collection       string
	maxContextTokens int
	maxAnswerTokens  int
	logger           *slog.Logger
}

// NewEngine creates a retrieval-augmented answering engine.
func NewEngine(
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	generator Generator,
	collection string,
	maxContextTokens, maxAnswerTokens int,
	logger *slog.Logger,
) Engine {
	return &engine{
		embedder:         embedder,
		vectorStore:      vectorStore,
		generator:        generator,
		collection:       collection,
		maxContextTokens: maxContextTokens,
		maxAnswerTokens:  maxAnswerTokens,
		logger:           logger,
	}
}

// Ask embeds the question, retrieves the nearest chunks, fits as many as the
// token budget allows, and asks the model to answer from them.
func (e *engine) Ask(ctx context.Context, question string) (*AskResponse, error) {
	logger := e.logger.With("query_id", uuid.NewString())
	logger.InfoContext(ctx, "answering question", "question_len", len(question))

	queryVec, err := e.embedder.EmbedText(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	results, err := e.vectorStore.Search(ctx, e.collection, queryVec, candidateCount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVectorStore, err)
	}

	chunks := make([]ScoredChunk, len(results))
	for i, result := range results {
		chunks[i] = ScoredChunk{Text: result.Document, Distance: result.Distance}
	}
	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].Distance < chunks[j].Distance
	})

	selected, tokenEstimate := selectWithinBudget(chunks, e.maxContextTokens)
	logger.InfoContext(ctx, "selected context",
		"candidates", len(chunks),
		"chunks_used", len(selected),
		"token_estimate", tokenEstimate,
	)

	answer, err := e.generator.Chat(ctx, buildPrompt(question, selected), e.maxAnswerTokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	return &AskResponse{
		Question:   question,
		Answer:     answer,
		ChunksUsed: len(selected),
	}, nil
}

// buildPrompt assembles the instruction, the retrieved context, and the
// question into a single user prompt.
func buildPrompt(question string, chunks []ScoredChunk) string {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	retrieved := strings.Join(texts, "\n\n")

	return fmt.Sprintf(`You are an AI Research Assistant. Answer the user's question based *only* on the following context.
If the context does not contain the answer, say "%s"
Context:
---
%s
---

Question: %s

Answer with specific references to papers when possible`, RefusalPhrase, retrieved, question)
}
