package titles

import (
	"sort"
	"strings"
	"unicode/utf8"

	"paperqa/internal/pdftext"
)

// Layout heuristic bounds: only the first lines of the page are scanned and
// candidates must have a title-like length.
const (
	maxScanSpans    = 15
	minCandidateLen = 15
	maxCandidateLen = 200
)

// bestLayoutCandidate inspects the first page's text spans and returns the
// most title-like one: largest font size first, then highest on the page.
// Returns false when no span qualifies.
func bestLayoutCandidate(spans []pdftext.Span) (string, bool) {
	if len(spans) > maxScanSpans {
		spans = spans[:maxScanSpans]
	}

	var candidates []pdftext.Span
	for _, span := range spans {
		if isTitleCandidate(span.Text) {
			candidates = append(candidates, span)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	// Larger Y is nearer the top of the page in PDF user space.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].FontSize != candidates[j].FontSize {
			return candidates[i].FontSize > candidates[j].FontSize
		}
		return candidates[i].Y > candidates[j].Y
	})

	title := strings.TrimSpace(strings.ReplaceAll(candidates[0].Text, "\n", " "))
	return title, title != ""
}

// isTitleCandidate filters out spans that cannot plausibly be a paper title:
// too short or too long, purely numeric, URLs, or the abstract heading.
func isTitleCandidate(text string) bool {
	text = strings.TrimSpace(text)
	n := utf8.RuneCountInString(text)
	if n <= minCandidateLen || n >= maxCandidateLen {
		return false
	}
	if isNumeric(text) {
		return false
	}
	if strings.HasPrefix(text, "http") {
		return false
	}
	if strings.HasPrefix(strings.ToLower(text), "abstract") {
		return false
	}
	return true
}

// isNumeric reports whether s consists only of digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
