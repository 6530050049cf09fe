package render

// canonicalize maps aliases and the legacy nested layout onto the rich shape.
// The input record is never mutated.
func canonicalize(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}

	setIfAbsent(out, "commonMistakes", doc["common_mistakes"])
	setIfAbsent(out, "summary", doc["key_points"])

	content, ok := doc["content"].(map[string]any)
	if !ok || hasRichSection(doc) {
		return out
	}

	setIfAbsent(out, "title", content["title"])
	setIfAbsent(out, "introduction", content["introduction"])

	if theory, ok := content["theory"].(map[string]any); ok {
		setIfAbsent(out, "definitions", theory["definitions"])
		setIfAbsent(out, "theorems", field(theory, "theorems", "properties"))
		setIfAbsent(out, "formulas", theory["formulas"])
	}
	setIfAbsent(out, "examples", content["examples"])
	setIfAbsent(out, "exercises", content["exercises"])

	switch summary := content["summary"].(type) {
	case map[string]any:
		setIfAbsent(out, "summary", field(summary, "key_points", "keyPoints", "content", "text"))
	default:
		setIfAbsent(out, "summary", summary)
	}
	setIfAbsent(out, "commonMistakes", field(content, "common_mistakes", "commonMistakes"))

	return out
}

func hasRichSection(doc map[string]any) bool {
	for _, s := range sections {
		if v, ok := doc[s.key]; ok && v != nil {
			return true
		}
	}
	return false
}

func setIfAbsent(m map[string]any, key string, v any) {
	if v == nil {
		return
	}
	if existing, ok := m[key]; ok && existing != nil {
		return
	}
	m[key] = v
}
