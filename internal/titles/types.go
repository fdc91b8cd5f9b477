package titles

// Provenance records which strategy produced a resolved title. It doubles as
// an audit trail and as the trigger for manual review of weak titles.
type Provenance string

const (
	ProvenanceArxiv           Provenance = "arxiv"
	ProvenancePDFMetadata     Provenance = "pdf_metadata"
	ProvenancePDFText         Provenance = "pdf_text"
	ProvenanceSemanticScholar Provenance = "semantic_scholar"
	ProvenanceFilename        Provenance = "filename"
)

// Resolution is the outcome of title resolution for one document.
type Resolution struct {
	Title      string
	Provenance Provenance
}

// NeedsManualReview reports whether the title came from the terminal filename
// fallback and should be checked by a human.
func (r Resolution) NeedsManualReview() bool {
	return r.Provenance == ProvenanceFilename
}
