package services

import "strings"

// DefaultSnippetLength is the snippet window size in characters.
const DefaultSnippetLength = 200

// makeSnippet selects the window of text that contains the most
// distinct query words, sliding over every start offset. Chunk texts
// are small, so the brute-force scan is acceptable. Ellipsis markers
// are added on the clipped sides.
func makeSnippet(text, query string, snippetLength int) string {
	if snippetLength <= 0 {
		snippetLength = DefaultSnippetLength
	}
	if len(text) <= snippetLength {
		return strings.TrimSpace(text)
	}

	queryWords := strings.Fields(strings.ToLower(query))
	textLower := strings.ToLower(text)

	bestPos := 0
	maxMatches := 0

	for i := 0; i+snippetLength <= len(text); i++ {
		window := textLower[i : i+snippetLength]
		matches := 0
		for _, word := range queryWords {
			if strings.Contains(window, word) {
				matches++
			}
		}
		if matches > maxMatches {
			maxMatches = matches
			bestPos = i
		}
	}

	snippet := text[bestPos : bestPos+snippetLength]
	if bestPos > 0 {
		snippet = "..." + snippet
	}
	if bestPos+snippetLength < len(text) {
		snippet = snippet + "..."
	}

	return strings.TrimSpace(snippet)
}
