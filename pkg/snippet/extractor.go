// Package snippet pulls context windows around a query out of reference texts.
// It favours recall: every matching document contributes one window, in corpus order.
package snippet

import (
	"strings"
	"unicode"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/entity"

	"github.com/google/uuid"
)

const (
	WindowBefore = 500
	WindowAfter  = 1000
	Ellipsis     = "..."
)

type Snippet struct {
	ReferenceId uuid.UUID
	Title       string
	Excerpt     string
}

// Extract searches each document's text for query (case-insensitive) and returns
// a whitespace-collapsed window around the first match. When tag is non-empty only
// documents carrying that tag are searched.
func Extract(corpus []*entity.ReferenceDocument, query string, tag string) []Snippet {
	needle := lowerRunes([]rune(strings.TrimSpace(query)))
	if len(needle) == 0 {
		return nil
	}

	var out []Snippet
	for _, doc := range corpus {
		if doc == nil || doc.TextContent == "" {
			continue
		}
		if tag != "" && !doc.HasTag(tag) {
			continue
		}

		original := []rune(doc.TextContent)
		idx := indexRunes(lowerRunes(original), needle)
		if idx < 0 {
			continue
		}

		start := idx - WindowBefore
		if start < 0 {
			start = 0
		}
		end := idx + WindowAfter
		if end > len(original) {
			end = len(original)
		}

		out = append(out, Snippet{
			ReferenceId: doc.Id,
			Title:       doc.Title,
			Excerpt:     Ellipsis + collapseWhitespace(string(original[start:end])) + Ellipsis,
		})
	}
	return out
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// lowerRunes folds rune by rune so indexes stay aligned with the original text.
func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func indexRunes(haystack, needle []rune) int {
	n := len(needle)
	for i := 0; i+n <= len(haystack); i++ {
		match := true
		for j := 0; j < n; j++ {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
