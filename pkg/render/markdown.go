// Package render turns the structured lesson record returned by the model into
// canonical markdown: fixed section order, dense numbering, normalized spacing.
package render

import (
	"encoding/json"
	"fmt"
	"strings"
)

const DefaultSectionPrefix = "##"

type Option func(*options)

type options struct {
	sectionPrefix string
}

// WithSectionPrefix overrides the markdown marker used for numbered sections.
func WithSectionPrefix(prefix string) Option {
	return func(o *options) {
		if p := strings.TrimSpace(prefix); p != "" {
			o.sectionPrefix = p
		}
	}
}

type sectionSpec struct {
	key    string
	title  string
	render func(v any) string
}

// Canonical order. A section is numbered only when it renders something.
var sections = []sectionSpec{
	{key: "introduction", title: "Introduction", render: renderProse},
	{key: "definitions", title: "Définitions", render: renderDefinitions},
	{key: "theorems", title: "Théorèmes et Propriétés", render: renderTheorems},
	{key: "formulas", title: "Formules Essentielles", render: renderFormulas},
	{key: "examples", title: "Exemples", render: renderExamples},
	{key: "exercises", title: "Exercices", render: renderExercises},
	{key: "summary", title: "Résumé", render: renderSummary},
	{key: "commonMistakes", title: "Erreurs Courantes", render: renderMistakes},
}

// Render converts doc into canonical markdown. Both the rich shape (top-level
// section keys) and the legacy shape (content.theory.*, content.summary.key_points)
// are accepted.
func Render(doc map[string]any, opts ...Option) string {
	o := options{sectionPrefix: DefaultSectionPrefix}
	for _, opt := range opts {
		opt(&o)
	}

	doc = canonicalize(doc)

	parts := make([]string, 0, len(sections)+1)
	if title := text(doc["title"]); title != "" {
		parts = append(parts, "# "+title)
	}

	number := 0
	for _, s := range sections {
		body := s.render(doc[s.key])
		if body == "" {
			continue
		}
		number++
		parts = append(parts, fmt.Sprintf("%s %d. %s\n\n%s", o.sectionPrefix, number, s.title, body))
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.TrimSpace(collapseBlankLines(strings.Join(parts, "\n\n"))) + "\n"
}

func renderProse(v any) string {
	return text(v)
}

func renderDefinitions(v any) string {
	var blocks []string
	for _, item := range items(v) {
		m, ok := item.(map[string]any)
		if !ok {
			if s := text(item); s != "" {
				blocks = append(blocks, s)
			}
			continue
		}
		term := text(field(m, "term", "title", "name", "concept"))
		body := text(field(m, "definition", "content", "description", "text"))
		switch {
		case term != "" && body != "":
			blocks = append(blocks, fmt.Sprintf("**%s** : %s", term, body))
		case body != "":
			blocks = append(blocks, body)
		case term != "":
			blocks = append(blocks, "**"+term+"**")
		}
	}
	return strings.Join(blocks, "\n\n")
}

func renderTheorems(v any) string {
	var blocks []string
	n := 0
	for _, item := range items(v) {
		m, ok := item.(map[string]any)
		if !ok {
			if s := text(item); s != "" {
				n++
				blocks = append(blocks, fmt.Sprintf("### Théorème %d\n\n%s", n, s))
			}
			continue
		}
		n++
		heading := fmt.Sprintf("### Théorème %d", n)
		if title := text(field(m, "title", "name")); title != "" {
			heading += " : " + title
		}
		var b strings.Builder
		b.WriteString(heading)
		if statement := text(field(m, "statement", "content", "enonce", "text")); statement != "" {
			b.WriteString("\n\n" + statement)
		}
		if proof := text(field(m, "proof", "demonstration")); proof != "" {
			b.WriteString("\n\n" + collapsible("Démonstration", proof))
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

func renderFormulas(v any) string {
	var blocks []string
	for _, item := range items(v) {
		m, ok := item.(map[string]any)
		if !ok {
			if f := WrapDisplayMath(raw(item)); f != "" {
				blocks = append(blocks, f)
			}
			continue
		}
		var parts []string
		if name := text(field(m, "name", "title")); name != "" {
			parts = append(parts, "**"+name+"**")
		}
		if f := WrapDisplayMath(raw(field(m, "formula", "latex", "expression"))); f != "" {
			parts = append(parts, f)
		}
		if desc := text(field(m, "description", "explanation")); desc != "" {
			parts = append(parts, desc)
		}
		if len(parts) > 0 {
			blocks = append(blocks, strings.Join(parts, "\n\n"))
		}
	}
	return strings.Join(blocks, "\n\n")
}

func renderExamples(v any) string {
	var blocks []string
	n := 0
	for _, item := range items(v) {
		m, ok := item.(map[string]any)
		if !ok {
			if s := text(item); s != "" {
				n++
				blocks = append(blocks, fmt.Sprintf("### Exemple %d\n\n%s", n, s))
			}
			continue
		}
		n++
		heading := fmt.Sprintf("### Exemple %d", n)
		if title := text(field(m, "title", "name")); title != "" {
			heading += " : " + title
		}
		var b strings.Builder
		b.WriteString(heading)
		if problem := text(field(m, "problem", "statement", "question", "enonce", "content")); problem != "" {
			b.WriteString("\n\n" + problem)
		}
		if solution := text(field(m, "solution", "answer", "correction")); solution != "" {
			b.WriteString("\n\n**Solution :**\n\n" + solution)
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

func renderExercises(v any) string {
	var blocks []string
	n := 0
	for _, item := range items(v) {
		m, ok := item.(map[string]any)
		if !ok {
			if s := text(item); s != "" {
				n++
				blocks = append(blocks, fmt.Sprintf("### Exercice %d\n\n%s", n, s))
			}
			continue
		}
		n++
		heading := fmt.Sprintf("### Exercice %d", n)
		if title := text(field(m, "title", "name")); title != "" {
			heading += " : " + title
		}

		var b strings.Builder
		b.WriteString(heading)
		if prompt := text(field(m, "problem", "question", "statement", "prompt", "enonce")); prompt != "" {
			b.WriteString("\n\n" + prompt)
		}
		if hints := bulletList(field(m, "hints", "hint")); hints != "" {
			b.WriteString("\n\n" + collapsible("Indices", hints))
		}
		// solution wins over answer; both surface under the same label
		solution := text(field(m, "solution"))
		if solution == "" {
			solution = text(field(m, "answer", "correction"))
		}
		if solution != "" {
			b.WriteString("\n\n" + collapsible("Solution", solution))
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

func renderSummary(v any) string {
	if _, ok := v.([]any); ok {
		return bulletList(v)
	}
	return text(v)
}

func renderMistakes(v any) string {
	var lines []string
	for _, item := range items(v) {
		m, ok := item.(map[string]any)
		if !ok {
			if s := text(item); s != "" {
				lines = append(lines, bullet(s))
			}
			continue
		}
		mistake := text(field(m, "mistake", "error", "title"))
		correction := text(field(m, "correction", "fix", "explanation"))
		switch {
		case mistake != "" && correction != "":
			lines = append(lines, bullet(mistake+" : "+correction))
		case mistake != "":
			lines = append(lines, bullet(mistake))
		case correction != "":
			lines = append(lines, bullet(correction))
		}
	}
	return strings.Join(lines, "\n")
}

func collapsible(label, body string) string {
	return "<details>\n<summary>" + label + "</summary>\n\n" + body + "\n\n</details>"
}

func bulletList(v any) string {
	var lines []string
	for _, item := range items(v) {
		if s := text(item); s != "" {
			lines = append(lines, bullet(s))
		}
	}
	return strings.Join(lines, "\n")
}

func bullet(s string) string {
	return "- " + strings.ReplaceAll(s, "\n", "\n  ")
}

// items accepts a list or a single scalar/record and always returns a list.
func items(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	default:
		return []any{t}
	}
}

func field(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// text renders a scalar as normalized prose. Records fall back to their
// content-like field; lists are joined line by line.
func text(v any) string {
	return NormalizeText(raw(v))
}

func raw(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool, float64, int, int64:
		return fmt.Sprint(t)
	case []any:
		lines := make([]string, 0, len(t))
		for _, item := range t {
			if s := raw(item); strings.TrimSpace(s) != "" {
				lines = append(lines, s)
			}
		}
		return strings.Join(lines, "\n")
	case map[string]any:
		return raw(field(t, "content", "text", "body", "description"))
	default:
		return ""
	}
}
