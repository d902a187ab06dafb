package llm

import "strings"

// Completion holds the candidate text fields of a provider response.
type Completion struct {
	Content          string
	ReasoningContent string
}

type extractor func(Completion) string

// candidates are tried in order; the first non-empty result wins.
var candidates = []extractor{
	func(c Completion) string { return c.Content },
	func(c Completion) string { return c.ReasoningContent },
}

// Text returns the first non-empty candidate field, or placeholder when all are empty.
func (c Completion) Text(placeholder string) string {
	for _, extract := range candidates {
		if text := strings.TrimSpace(extract(c)); text != "" {
			return text
		}
	}
	return placeholder
}
