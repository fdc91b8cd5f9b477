package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks paperqa/internal/vectorstore VectorStore

import "context"

// Point represents one indexed chunk: a stable integer id, its embedding,
// the chunk text itself, and metadata.
type Point struct {
	ID       int
	Vec      []float32
	Document string
	Meta     map[string]any
}

// SearchResult represents a search hit. Distance is similarity-inverse:
// smaller means more relevant.
type SearchResult struct {
	Document string
	Distance float32
	Meta     map[string]any
}

// VectorStore defines the interface for vector index operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns up to k nearest neighbors of the query vector,
	// ranked by ascending distance.
	Search(ctx context.Context, collection string, query []float32, k int) ([]SearchResult, error)

	// Count returns the number of points in the collection.
	Count(ctx context.Context, collection string) (int, error)
}
