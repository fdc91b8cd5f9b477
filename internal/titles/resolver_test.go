package titles

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"paperqa/internal/pdftext"
)

// stubArxiv is a canned ArxivLookup for tests.
type stubArxiv struct {
	title string
	err   error
	calls int
}

func (s *stubArxiv) TitleByID(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.title, s.err
}

// stubScholar is a canned BibliographicSearch for tests.
type stubScholar struct {
	title string
	err   error
	calls int
}

func (s *stubScholar) SearchTitle(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.title, s.err
}

func TestResolve_ArxivWinsRegardlessOfMetadata(t *testing.T) {
	arxiv := &stubArxiv{title: "Attention Is All You Need"}
	resolver := NewResolver(arxiv, &stubScholar{err: fmt.Errorf("should not be called")})

	doc := &pdftext.Document{
		MetaTitle: "Some embedded metadata title here",
		FirstPageSpans: []pdftext.Span{
			{Text: "A perfectly plausible layout title", FontSize: 20, Y: 700},
		},
	}

	res := resolver.Resolve(context.Background(), "1706.03762v5.pdf", doc)

	if res.Provenance != ProvenanceArxiv {
		t.Errorf("provenance = %q, want %q", res.Provenance, ProvenanceArxiv)
	}
	if res.Title != "Attention Is All You Need" {
		t.Errorf("title = %q, want arXiv title", res.Title)
	}
	if res.NeedsManualReview() {
		t.Error("arXiv title should not need manual review")
	}
}

func TestResolve_ArxivFailureFallsThrough(t *testing.T) {
	arxiv := &stubArxiv{err: fmt.Errorf("network timeout")}
	resolver := NewResolver(arxiv, nil)

	doc := &pdftext.Document{MetaTitle: "Deep Residual Learning for Image Recognition"}

	res := resolver.Resolve(context.Background(), "1512.03385.pdf", doc)

	if res.Provenance != ProvenancePDFMetadata {
		t.Errorf("provenance = %q, want %q", res.Provenance, ProvenancePDFMetadata)
	}
	if arxiv.calls != 1 {
		t.Errorf("arXiv calls = %d, want 1", arxiv.calls)
	}
}

func TestResolve_NonArxivFilenameSkipsLookup(t *testing.T) {
	arxiv := &stubArxiv{title: "should not be used"}
	resolver := NewResolver(arxiv, nil)

	res := resolver.Resolve(context.Background(), "resnet_paper.pdf", nil)

	if arxiv.calls != 0 {
		t.Errorf("arXiv calls = %d, want 0 for non-arXiv filename", arxiv.calls)
	}
	if res.Provenance != ProvenanceFilename {
		t.Errorf("provenance = %q, want %q", res.Provenance, ProvenanceFilename)
	}
}

func TestResolve_MetadataLengthBounds(t *testing.T) {
	tests := []struct {
		name      string
		metaTitle string
		accepted  bool
	}{
		{name: "too short", metaTitle: "Short", accepted: false},
		{name: "exactly 10 chars rejected", metaTitle: strings.Repeat("a", 10), accepted: false},
		{name: "11 chars accepted", metaTitle: strings.Repeat("a", 11), accepted: true},
		{name: "199 chars accepted", metaTitle: strings.Repeat("a", 199), accepted: true},
		{name: "200 chars rejected", metaTitle: strings.Repeat("a", 200), accepted: false},
		{name: "empty", metaTitle: "", accepted: false},
		{name: "150 multibyte runes accepted", metaTitle: strings.Repeat("é", 150), accepted: true},
		{name: "10 multibyte runes rejected", metaTitle: strings.Repeat("é", 10), accepted: false},
	}

	resolver := NewResolver(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &pdftext.Document{MetaTitle: tt.metaTitle}
			res := resolver.Resolve(context.Background(), "paper.pdf", doc)

			gotAccepted := res.Provenance == ProvenancePDFMetadata
			if gotAccepted != tt.accepted {
				t.Errorf("metadata accepted = %v, want %v (provenance %q)", gotAccepted, tt.accepted, res.Provenance)
			}
		})
	}
}

func TestResolve_LayoutVerifiedBySemanticScholar(t *testing.T) {
	scholar := &stubScholar{title: "BERT: Pre-training of Deep Bidirectional Transformers for Language Understanding"}
	resolver := NewResolver(nil, scholar)

	doc := &pdftext.Document{
		FirstPageSpans: []pdftext.Span{
			{Text: "BERT: Pre-training of Deep Bidirectional", FontSize: 18, Y: 720},
		},
	}

	res := resolver.Resolve(context.Background(), "bert_paper.pdf", doc)

	if res.Provenance != ProvenanceSemanticScholar {
		t.Errorf("provenance = %q, want %q", res.Provenance, ProvenanceSemanticScholar)
	}
	if res.Title != scholar.title {
		t.Errorf("title = %q, want verified title", res.Title)
	}
	if scholar.calls != 1 {
		t.Errorf("scholar calls = %d, want 1", scholar.calls)
	}
}

func TestResolve_LayoutKeptWhenVerificationFails(t *testing.T) {
	scholar := &stubScholar{err: fmt.Errorf("service unavailable")}
	resolver := NewResolver(nil, scholar)

	doc := &pdftext.Document{
		FirstPageSpans: []pdftext.Span{
			{Text: "Generative Adversarial Networks Revisited", FontSize: 18, Y: 720},
		},
	}

	res := resolver.Resolve(context.Background(), "gan_paper.pdf", doc)

	if res.Provenance != ProvenancePDFText {
		t.Errorf("provenance = %q, want %q", res.Provenance, ProvenancePDFText)
	}
	if res.Title != "Generative Adversarial Networks Revisited" {
		t.Errorf("title = %q, want heuristic title", res.Title)
	}
}

func TestResolve_TerminalFallback(t *testing.T) {
	resolver := NewResolver(&stubArxiv{err: fmt.Errorf("down")}, &stubScholar{err: fmt.Errorf("down")})

	filenames := []string{
		"1706.03762_attention_is_all_you_need.pdf",
		"12_deep_learning_survey.pdf",
		"some_random_paper.pdf",
		"2301.00001.pdf",
		"_.pdf",
	}

	for _, filename := range filenames {
		t.Run(filename, func(t *testing.T) {
			res := resolver.Resolve(context.Background(), filename, nil)

			if res.Provenance != ProvenanceFilename {
				t.Errorf("provenance = %q, want %q", res.Provenance, ProvenanceFilename)
			}
			if res.Title == "" {
				t.Error("fallback title must be non-empty")
			}
			if strings.Contains(res.Title, "_") {
				t.Errorf("fallback title %q contains underscores", res.Title)
			}
			if !res.NeedsManualReview() {
				t.Error("filename provenance must be flagged for manual review")
			}
		})
	}
}

func TestBestLayoutCandidate_Ranking(t *testing.T) {
	spans := []pdftext.Span{
		{Text: "3", FontSize: 24, Y: 750},                                         // bare number
		{Text: "http://example.com/paper-landing-page", FontSize: 20, Y: 740},     // URL
		{Text: "Abstract: we present a new method for X", FontSize: 12, Y: 600},   // abstract heading
		{Text: "An Extremely Large Font Subtitle Line", FontSize: 18, Y: 500},     // big font, low
		{Text: "An Extremely Large Font Title Line Here", FontSize: 18, Y: 730},   // big font, high
		{Text: "author@university.edu and friends et al", FontSize: 10, Y: 710},   // small font
	}

	title, ok := bestLayoutCandidate(spans)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if title != "An Extremely Large Font Title Line Here" {
		t.Errorf("candidate = %q, want largest-font highest span", title)
	}
}

func TestBestLayoutCandidate_NoCandidates(t *testing.T) {
	spans := []pdftext.Span{
		{Text: "42", FontSize: 24, Y: 750},
		{Text: "short", FontSize: 20, Y: 740},
	}
	if _, ok := bestLayoutCandidate(spans); ok {
		t.Error("expected no candidate from disqualified spans")
	}
}

func TestBestLayoutCandidate_ScanWindowCap(t *testing.T) {
	// A qualifying span beyond the scan window must be ignored.
	var spans []pdftext.Span
	for i := 0; i < maxScanSpans; i++ {
		spans = append(spans, pdftext.Span{Text: fmt.Sprintf("%d", i), FontSize: 10, Y: float64(800 - i)})
	}
	spans = append(spans, pdftext.Span{Text: "A Qualifying Title Past The Window", FontSize: 30, Y: 100})

	if _, ok := bestLayoutCandidate(spans); ok {
		t.Error("span past the scan window should not be considered")
	}
}
