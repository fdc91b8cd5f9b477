package rag

// charsPerToken is the rough character-to-token ratio used for budgeting.
// English prose averages close to four characters per token.
const charsPerToken = 4

// estimateTokens approximates the token count of a text.
func estimateTokens(text string) int {
	return len(text) / charsPerToken
}

// selectWithinBudget takes chunks in the given order until adding the next
// one would exceed the token budget, returning the selection and its total
// estimated token cost. Selection halts at the first chunk that does not fit:
// later smaller chunks are not considered, keeping the context a strict
// prefix of the relevance ranking.
func selectWithinBudget(chunks []ScoredChunk, maxTokens int) ([]ScoredChunk, int) {
	var selected []ScoredChunk
	used := 0
	for _, chunk := range chunks {
		cost := estimateTokens(chunk.Text)
		if used+cost >= maxTokens {
			break
		}
		selected = append(selected, chunk)
		used += cost
	}
	return selected, used
}
