package ingest

import "fmt"

// ChunkText splits text into fixed-size windows of runes. Consecutive chunks
// share overlap runes so sentences cut at a boundary survive in the next
// window. The last chunk may be shorter than size.
func ChunkText(text string, size, overlap int) ([]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("overlap must be in [0, size), got %d for size %d", overlap, size)
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	step := size - overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}

// EnrichChunk prefixes a chunk with its paper title so the embedding captures
// which document the text belongs to.
func EnrichChunk(title, chunk string) string {
	return fmt.Sprintf("Paper Title: %s\n\n%s", title, chunk)
}
