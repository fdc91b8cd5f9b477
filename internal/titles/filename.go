package titles

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	leadingNumberPrefix  = regexp.MustCompile(`^\d+_`)
	leadingArxivIDPrefix = regexp.MustCompile(`^\d{4}\.\d{4,5}(v\d+)?`)
)

// CleanFilename converts a PDF filename into a readable title: the extension
// and any leading numeric or arXiv-id prefix are stripped, underscores become
// spaces, and each word is capitalized. It always returns a non-empty string
// for a non-empty filename.
func CleanFilename(filename string) string {
	name := strings.TrimSuffix(filename, ".pdf")
	name = leadingNumberPrefix.ReplaceAllString(name, "")
	name = leadingArxivIDPrefix.ReplaceAllString(name, "")
	name = strings.TrimSpace(strings.ReplaceAll(name, "_", " "))

	if name == "" {
		// Nothing left after stripping prefixes; fall back to the bare
		// filename, still without underscores. A filename of only
		// underscores leaves nothing at all, so use a fixed placeholder
		// to keep the terminal fallback non-empty.
		base := strings.TrimSpace(strings.ReplaceAll(strings.TrimSuffix(filename, ".pdf"), "_", " "))
		if base == "" {
			return "Untitled"
		}
		return base
	}

	words := strings.Fields(name)
	for i, word := range words {
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
