package storage

// TitleRecord is one resolved paper title in the durable cache, keyed by the
// PDF filename it was resolved for.
type TitleRecord struct {
	Filename          string
	Title             string
	Provenance        string
	NeedsManualReview bool
}
