package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"paperqa/internal/contextutil"
	"paperqa/internal/rag"
)

// Question length bounds, in characters.
const (
	minQuestionLen = 1
	maxQuestionLen = 500
)

// AskHandler handles HTTP requests for question answering.
type AskHandler struct {
	ragEngine rag.Engine
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(ragEngine rag.Engine) *AskHandler {
	return &AskHandler{ragEngine: ragEngine}
}

// AskRequest represents the HTTP request payload for questions.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse represents the HTTP response payload for answers.
type AskResponse struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	ChunksUsed int    `json:"chunks_used"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles a question: validate, run the retrieval pipeline, and
// return the answer with the number of context chunks used.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	question := strings.TrimSpace(req.Question)
	questionLen := utf8.RuneCountInString(question)
	if questionLen < minQuestionLen {
		logger.WarnContext(ctx, "empty question in request")
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}
	if questionLen > maxQuestionLen {
		logger.WarnContext(ctx, "question too long", "length", questionLen)
		writeError(w, http.StatusBadRequest, "Question must be at most 500 characters")
		return
	}

	ragResp, err := h.ragEngine.Ask(ctx, question)
	if err != nil {
		h.handleEngineError(w, r, err)
		return
	}

	resp := AskResponse{
		Question:   ragResp.Question,
		Answer:     ragResp.Answer,
		ChunksUsed: ragResp.ChunksUsed,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleEngineError maps pipeline stage errors to HTTP status codes.
func (h *AskHandler) handleEngineError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "failed to answer question", "error", err)

	switch {
	case errors.Is(err, rag.ErrVectorStore):
		writeError(w, http.StatusServiceUnavailable, "Vector store unavailable")
	case errors.Is(err, rag.ErrEmbedding), errors.Is(err, rag.ErrGeneration):
		writeError(w, http.StatusBadGateway, "External service error")
	default:
		writeError(w, http.StatusInternalServerError, "Failed to answer question")
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
