package ingest

// Chunk is one indexable unit of a paper: a window of text enriched with the
// paper's title, assigned a sequential id across the whole corpus.
type Chunk struct {
	ID     int
	Text   string
	Source string // PDF filename the chunk came from
	Title  string // Resolved paper title
}

// Stats summarizes a pipeline run.
type Stats struct {
	PapersProcessed int
	PapersSkipped   int
	ChunksIndexed   int
	TitlesResolved  int            // Titles resolved this run (not served from cache)
	ByProvenance    map[string]int // Resolution counts keyed by provenance
	NeedsReview     []string       // Filenames whose title fell back to the filename
}
