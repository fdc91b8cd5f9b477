package titles

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"paperqa/internal/pdftext"
)

// ArxivLookup resolves an arXiv identifier to a paper title.
// A lookup that finds nothing returns an error; the resolver treats any
// error as "no result" and moves on.
type ArxivLookup interface {
	TitleByID(ctx context.Context, id string) (string, error)
}

// BibliographicSearch finds the best-matching title for a free-text query.
type BibliographicSearch interface {
	SearchTitle(ctx context.Context, query string) (string, error)
}

// Metadata title bounds: trimmed length in runes strictly between these values.
const (
	minMetaTitleLen = 10
	maxMetaTitleLen = 200
)

var arxivIDPattern = regexp.MustCompile(`^(\d{4}\.\d{4,5})(v\d+)?`)

// Resolver produces a best-effort title for a document by trying strategies
// in order of reliability: arXiv lookup, embedded PDF metadata, first-page
// layout heuristic (optionally upgraded by bibliographic verification), and
// finally a cleaned-up filename. The filename fallback always succeeds, so
// Resolve never fails.
type Resolver struct {
	arxiv   ArxivLookup
	scholar BibliographicSearch
	logger  *slog.Logger
}

// NewResolver creates a Resolver. Either lookup may be nil, in which case the
// corresponding strategy is skipped.
func NewResolver(arxiv ArxivLookup, scholar BibliographicSearch) *Resolver {
	return &Resolver{
		arxiv:   arxiv,
		scholar: scholar,
		logger:  slog.Default(),
	}
}

// Resolve returns a title and its provenance for the given file. doc may be
// nil when text extraction failed; the arXiv and filename strategies still
// apply. No individual strategy failure is fatal.
func (r *Resolver) Resolve(ctx context.Context, filename string, doc *pdftext.Document) Resolution {
	strategies := []func(context.Context, string, *pdftext.Document) (Resolution, bool){
		r.fromArxiv,
		r.fromMetadata,
		r.fromLayout,
	}

	for _, strategy := range strategies {
		if res, ok := strategy(ctx, filename, doc); ok {
			return res
		}
	}
	return Resolution{Title: CleanFilename(filename), Provenance: ProvenanceFilename}
}

// fromArxiv matches the filename against the arXiv id pattern and asks the
// arXiv API for the official title.
func (r *Resolver) fromArxiv(ctx context.Context, filename string, _ *pdftext.Document) (Resolution, bool) {
	if r.arxiv == nil {
		return Resolution{}, false
	}
	match := arxivIDPattern.FindStringSubmatch(strings.TrimSuffix(filename, ".pdf"))
	if match == nil {
		return Resolution{}, false
	}

	title, err := r.arxiv.TitleByID(ctx, match[1])
	if err != nil {
		r.logger.WarnContext(ctx, "arXiv lookup failed", "filename", filename, "arxiv_id", match[1], "error", err)
		return Resolution{}, false
	}
	if title == "" {
		return Resolution{}, false
	}
	return Resolution{Title: title, Provenance: ProvenanceArxiv}, true
}

// fromMetadata accepts the embedded PDF title if its length is plausible.
func (r *Resolver) fromMetadata(_ context.Context, _ string, doc *pdftext.Document) (Resolution, bool) {
	if doc == nil {
		return Resolution{}, false
	}
	title := strings.TrimSpace(doc.MetaTitle)
	n := utf8.RuneCountInString(title)
	if n <= minMetaTitleLen || n >= maxMetaTitleLen {
		return Resolution{}, false
	}
	return Resolution{Title: title, Provenance: ProvenancePDFMetadata}, true
}

// fromLayout picks a title candidate from the first page's text layout and,
// when that succeeds, tries to verify it against a bibliographic index. A
// verified title wins; otherwise the heuristic result stands.
func (r *Resolver) fromLayout(ctx context.Context, filename string, doc *pdftext.Document) (Resolution, bool) {
	if doc == nil {
		return Resolution{}, false
	}
	guess, ok := bestLayoutCandidate(doc.FirstPageSpans)
	if !ok {
		return Resolution{}, false
	}

	if r.scholar != nil {
		verified, err := r.scholar.SearchTitle(ctx, guess)
		if err != nil {
			r.logger.DebugContext(ctx, "bibliographic verification failed", "filename", filename, "guess", guess, "error", err)
		} else if verified != "" {
			return Resolution{Title: verified, Provenance: ProvenanceSemanticScholar}, true
		}
	}
	return Resolution{Title: guess, Provenance: ProvenancePDFText}, true
}
