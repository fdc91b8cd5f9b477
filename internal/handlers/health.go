package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"paperqa/internal/contextutil"
	"paperqa/internal/rag"
	"paperqa/internal/vectorstore"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	vectorStore        vectorstore.VectorStore
	embedder           rag.Embedder
	collectionName     string
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(vectorStore vectorstore.VectorStore, embedder rag.Embedder, collectionName string) *HealthHandler {
	return &HealthHandler{
		vectorStore:        vectorStore,
		embedder:           embedder,
		collectionName:     collectionName,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response. DatabaseDocs is the
// number of indexed chunks, so clients can tell an empty index from a dead one.
type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    string            `json:"timestamp"`
	DatabaseDocs int               `json:"database_docs"`
	Checks       map[string]string `json:"checks"`
	Issues       []string          `json:"issues,omitempty"`
}

// ServeHTTP reports whether the index and embedding service are reachable.
// Returns 200 when healthy, 503 otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	docs, ok := h.checkVectorStore(checkCtx, logger)
	if ok {
		checks["vector_store"] = "ok"
	} else {
		checks["vector_store"] = "error"
		issues = append(issues, "vector_store_unavailable")
	}

	if h.checkEmbedder(checkCtx, logger) {
		checks["embeddings"] = "ok"
	} else {
		checks["embeddings"] = "error"
		issues = append(issues, "embedding_service_unavailable")
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:       status,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		DatabaseDocs: docs,
		Checks:       checks,
	}
	if len(issues) > 0 {
		response.Issues = issues
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode health response", "error", err)
	}
}

// checkVectorStore returns the indexed document count and whether the index
// is reachable.
func (h *HealthHandler) checkVectorStore(ctx context.Context, logger *slog.Logger) (int, bool) {
	count, err := h.vectorStore.Count(ctx, h.collectionName)
	if err != nil {
		logger.WarnContext(ctx, "vector store health check failed", "error", err)
		return 0, false
	}
	return count, true
}

// checkEmbedder probes the embedding service with a trivial input.
func (h *HealthHandler) checkEmbedder(ctx context.Context, logger *slog.Logger) bool {
	if _, err := h.embedder.EmbedText(ctx, "test"); err != nil {
		logger.WarnContext(ctx, "embedding health check failed", "error", err)
		return false
	}
	return true
}
