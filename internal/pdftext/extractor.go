package pdftext

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Span is a run of text on the first page with layout information.
// Y is in PDF user space, where larger values are nearer the top of the page.
type Span struct {
	Text     string
	FontSize float64
	Y        float64
}

// Document holds everything extracted from a single PDF file.
type Document struct {
	// FullText is the plain text of all pages concatenated.
	FullText string
	// MetaTitle is the title from the PDF Info dictionary, empty if absent.
	MetaTitle string
	// FirstPageSpans are the text spans of the first page in content order,
	// used by the layout-based title heuristic.
	FirstPageSpans []Span
}

// Extract opens the PDF at path and returns its full text, embedded title
// metadata and first-page text spans. A file that cannot be opened or parsed
// returns an error describing the reason.
func Extract(path string) (doc *Document, err error) {
	// The underlying parser panics on some malformed files; convert that
	// into an ordinary extraction failure so one bad paper cannot take
	// down an ingestion run.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("failed to parse PDF %s: %v", path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", path, err)
	}
	raw, err := io.ReadAll(plain)
	if err != nil {
		return nil, fmt.Errorf("failed to read text from %s: %w", path, err)
	}

	doc = &Document{
		FullText:  string(raw),
		MetaTitle: metadataTitle(reader),
	}
	if reader.NumPage() >= 1 {
		doc.FirstPageSpans = pageSpans(reader.Page(1))
	}
	return doc, nil
}

// metadataTitle reads the Title entry of the document Info dictionary.
func metadataTitle(reader *pdf.Reader) string {
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return ""
	}
	title := info.Key("Title")
	if title.IsNull() {
		return ""
	}
	return strings.TrimSpace(title.Text())
}

// pageSpans collects the text runs of a page, merging consecutive fragments
// that share a baseline and font size into a single span.
func pageSpans(page pdf.Page) []Span {
	if page.V.IsNull() {
		return nil
	}
	content := page.Content()

	var spans []Span
	for _, t := range content.Text {
		text := t.S
		if text == "" {
			continue
		}
		if n := len(spans); n > 0 {
			last := &spans[n-1]
			if last.FontSize == t.FontSize && math.Abs(last.Y-t.Y) < 0.5 {
				last.Text += text
				continue
			}
		}
		spans = append(spans, Span{Text: text, FontSize: t.FontSize, Y: t.Y})
	}

	for i := range spans {
		spans[i].Text = strings.TrimSpace(spans[i].Text)
	}
	return spans
}
