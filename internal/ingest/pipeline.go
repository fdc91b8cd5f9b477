package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"paperqa/internal/pdftext"
	"paperqa/internal/storage"
	"paperqa/internal/titles"
	"paperqa/internal/vectorstore"
)

// embedBatchSize caps how many chunks get embedded and upserted per call.
const embedBatchSize = 500

// Embedder turns a batch of texts into vectors, one per input.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// TitleResolver produces a title for a document. The pipeline only consults it
// for files not already present in the title cache.
type TitleResolver interface {
	Resolve(ctx context.Context, filename string, doc *pdftext.Document) titles.Resolution
}

// Pipeline builds the vector index from a directory of PDFs: extract text,
// resolve titles, chunk, embed, upsert. Papers that fail extraction are
// skipped and logged, never fatal.
type Pipeline struct {
	papersDir    string
	titleStore   storage.TitleStore
	resolver     TitleResolver
	embedder     Embedder
	vectorStore  vectorstore.VectorStore
	collection   string
	chunkSize    int
	chunkOverlap int
	logger       *slog.Logger

	// extract is swappable for tests.
	extract func(path string) (*pdftext.Document, error)
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(
	papersDir string,
	titleStore storage.TitleStore,
	resolver TitleResolver,
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	chunkSize, chunkOverlap int,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		papersDir:    papersDir,
		titleStore:   titleStore,
		resolver:     resolver,
		embedder:     embedder,
		vectorStore:  vectorStore,
		collection:   collection,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		logger:       logger,
		extract:      pdftext.Extract,
	}
}

// Run ingests every PDF under the papers directory and returns run statistics.
// Chunk ids are assigned sequentially across the whole corpus in filename
// order, so re-running over the same corpus overwrites the same points.
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	paths, err := filepath.Glob(filepath.Join(p.papersDir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("failed to list papers: %w", err)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s", p.papersDir)
	}

	cached, err := p.titleStore.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load title cache: %w", err)
	}

	stats := &Stats{ByProvenance: make(map[string]int)}
	var chunks []Chunk
	var newRecords []storage.TitleRecord
	nextID := 0

	for i, path := range paths {
		filename := filepath.Base(path)
		p.logger.InfoContext(ctx, "processing paper",
			"filename", filename,
			"progress", fmt.Sprintf("%d/%d", i+1, len(paths)),
		)

		doc, err := p.extract(path)
		if err != nil {
			p.logger.WarnContext(ctx, "skipping unreadable PDF", "filename", filename, "error", err)
			stats.PapersSkipped++
			continue
		}

		record, ok := cached[filename]
		if !ok {
			res := p.resolver.Resolve(ctx, filename, doc)
			record = storage.TitleRecord{
				Filename:          filename,
				Title:             res.Title,
				Provenance:        string(res.Provenance),
				NeedsManualReview: res.NeedsManualReview(),
			}
			newRecords = append(newRecords, record)
			stats.TitlesResolved++
			p.logger.InfoContext(ctx, "resolved title",
				"filename", filename,
				"title", record.Title,
				"provenance", record.Provenance,
			)
		}

		stats.ByProvenance[record.Provenance]++
		if record.NeedsManualReview {
			stats.NeedsReview = append(stats.NeedsReview, filename)
		}

		if strings.TrimSpace(doc.FullText) == "" {
			p.logger.WarnContext(ctx, "skipping PDF with no extractable text", "filename", filename)
			stats.PapersSkipped++
			continue
		}

		pieces, err := ChunkText(doc.FullText, p.chunkSize, p.chunkOverlap)
		if err != nil {
			return nil, fmt.Errorf("failed to chunk %s: %w", filename, err)
		}

		for _, piece := range pieces {
			chunks = append(chunks, Chunk{
				ID:     nextID,
				Text:   EnrichChunk(record.Title, piece),
				Source: filename,
				Title:  record.Title,
			})
			nextID++
		}
		p.logger.DebugContext(ctx, "chunked paper", "filename", filename, "chunks", len(pieces))
		stats.PapersProcessed++
	}

	if err := p.titleStore.UpsertAll(ctx, newRecords); err != nil {
		return nil, fmt.Errorf("failed to save title cache: %w", err)
	}

	if err := p.index(ctx, chunks); err != nil {
		return nil, err
	}
	stats.ChunksIndexed = len(chunks)

	p.logger.InfoContext(ctx, "ingestion complete",
		"papers_processed", stats.PapersProcessed,
		"papers_skipped", stats.PapersSkipped,
		"chunks_indexed", stats.ChunksIndexed,
		"titles_resolved", stats.TitlesResolved,
		"by_provenance", stats.ByProvenance,
		"needs_manual_review", stats.NeedsReview,
	)
	return stats, nil
}

// index embeds and upserts chunks in batches.
func (p *Pipeline) index(ctx context.Context, chunks []Chunk) error {
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Text
		}

		vectors, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed batch at %d: %w", start, err)
		}

		points := make([]vectorstore.Point, len(batch))
		for i, chunk := range batch {
			points[i] = vectorstore.Point{
				ID:       chunk.ID,
				Vec:      vectors[i],
				Document: chunk.Text,
				Meta: map[string]any{
					"source": chunk.Source,
					"title":  chunk.Title,
				},
			}
		}

		if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
			return fmt.Errorf("failed to upsert batch at %d: %w", start, err)
		}

		p.logger.InfoContext(ctx, "indexed batch", "from", start, "to", end, "total", len(chunks))
	}
	return nil
}
