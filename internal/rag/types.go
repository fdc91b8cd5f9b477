package rag

import "errors"

// AskRequest is the body of an ask call.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse carries the generated answer and how many retrieved chunks fit
// into the prompt context.
type AskResponse struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	ChunksUsed int    `json:"chunks_used"`
}

// ScoredChunk is one retrieved chunk with its distance from the question.
// Smaller distance means more relevant.
type ScoredChunk struct {
	Text     string
	Distance float32
}

// Sentinel errors identifying which stage of the pipeline failed, so the
// transport layer can map them to distinct status codes.
var (
	ErrEmbedding   = errors.New("embedding failed")
	ErrVectorStore = errors.New("vector store unavailable")
	ErrGeneration  = errors.New("answer generation failed")
)
