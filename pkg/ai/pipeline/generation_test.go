package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/pkg/logger"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/invoke"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/prompt"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAssembler struct {
	asm *prompt.Assembly
	err error
}

func (s stubAssembler) Assemble(ctx context.Context, lesson prompt.LessonSummary, ids []uuid.UUID, instructions string) (*prompt.Assembly, error) {
	return s.asm, s.err
}

type stubInvoker struct {
	out    invoke.Outcome
	system string
	blocks []llm.ContentBlock
}

func (s *stubInvoker) Invoke(ctx context.Context, system string, blocks []llm.ContentBlock) invoke.Outcome {
	s.system = system
	s.blocks = blocks
	return s.out
}

func newAssembly() *prompt.Assembly {
	return &prompt.Assembly{
		Blocks:         []llm.ContentBlock{llm.TextBlock{Text: "lesson"}},
		UsedReferences: []string{"Cours"},
	}
}

func TestGenerateRendersStructuredAnswer(t *testing.T) {
	raw := "```json\n{\"title\": \"Dérivation\", \"theorems\": [{\"title\": \"Dérivée d'une somme\", \"statement\": \"$(u+v)' = u' + v'$ et $u \\neq v$\"}]}\n```"
	inv := &stubInvoker{out: invoke.Outcome{Kind: invoke.Success, RawText: raw, Attempts: 2}}
	g := NewGenerator(stubAssembler{asm: newAssembly()}, inv, logger.NewNopLogger())

	res := g.Generate(context.Background(), Request{Lesson: prompt.LessonSummary{Title: "Dérivation"}})

	require.True(t, res.Success, res.Message)
	assert.False(t, res.Fallback)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, []string{"Cours"}, res.UsedReferences)
	assert.Equal(t, MessageGenerated, res.Message)
	assert.True(t, strings.HasPrefix(res.Markdown, "# Dérivation\n\n## 1. Théorèmes et Propriétés"))
	assert.Contains(t, res.Markdown, `u \neq v`)
	assert.Equal(t, prompt.SystemInstruction, inv.system)
	assert.Len(t, inv.blocks, 1)
}

func TestGenerateKeepsRawTextWhenDecodeFails(t *testing.T) {
	raw := "Voici la leçon :\\n\\nLa dérivée de $x^2$ est $2x$ \\unknownmacro"
	inv := &stubInvoker{out: invoke.Outcome{Kind: invoke.Success, RawText: raw, Attempts: 1}}
	g := NewGenerator(stubAssembler{asm: newAssembly()}, inv, logger.NewNopLogger())

	res := g.Generate(context.Background(), Request{})

	require.True(t, res.Success)
	assert.True(t, res.Fallback)
	assert.Equal(t, MessageFallback, res.Message)
	assert.Equal(t, "Voici la leçon :\n\nLa dérivée de $x^2$ est $2x$ \\unknownmacro\n", res.Markdown)
}

func TestGenerateProviderFailure(t *testing.T) {
	inv := &stubInvoker{out: invoke.Outcome{
		Kind:     invoke.FatalFailure,
		Category: invoke.CategoryQuotaExceeded,
		Reason:   "gemini error: status 429, body: quota",
		Attempts: 4,
	}}
	g := NewGenerator(stubAssembler{asm: newAssembly()}, inv, logger.NewNopLogger())

	res := g.Generate(context.Background(), Request{})

	assert.False(t, res.Success)
	assert.Equal(t, invoke.CategoryQuotaExceeded, res.Category)
	assert.Equal(t, "[QUOTA_EXCEEDED] gemini error: status 429, body: quota", res.Message)
	assert.Equal(t, 4, res.Attempts)
	assert.Empty(t, res.Markdown)
}

func TestGenerateAssemblyFailure(t *testing.T) {
	inv := &stubInvoker{}
	g := NewGenerator(stubAssembler{err: errors.New("load reference corpus: db down")}, inv, logger.NewNopLogger())

	res := g.Generate(context.Background(), Request{})

	assert.False(t, res.Success)
	assert.Equal(t, CategoryAssemblyFailure, res.Category)
	assert.Contains(t, res.Message, "db down")
	assert.Nil(t, inv.blocks)
}

func TestGenerateEmptyAnswer(t *testing.T) {
	inv := &stubInvoker{out: invoke.Outcome{Kind: invoke.Success, RawText: "```json\n```", Attempts: 1}}
	g := NewGenerator(stubAssembler{asm: newAssembly()}, inv, logger.NewNopLogger())

	res := g.Generate(context.Background(), Request{})

	assert.False(t, res.Success)
	assert.Equal(t, invoke.CategoryDecodeFailure, res.Category)
	assert.True(t, strings.HasPrefix(res.Message, "[DECODE_FAILURE]"))
}

func TestToMarkdownRepairsControlCharacters(t *testing.T) {
	raw := "{\"introduction\": \"Ligne 1\nLigne 2\tfin \\frac{1}{2}\"}"

	md, fallback, err := ToMarkdown(raw)

	require.NoError(t, err)
	assert.False(t, fallback)
	assert.Equal(t, "## 1. Introduction\n\nLigne 1\nLigne 2\tfin \\frac{1}{2}\n", md)
}

func TestToMarkdownKeepsAnswerWithoutKnownSections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"string content", "{\"content\": \"## Leçon\nTexte utile\"}", "Texte utile"},
		{"unknown wrapper", `{"lesson": {"introduction": "Bonjour"}}`, "Bonjour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, fallback, err := ToMarkdown(tt.raw)

			require.NoError(t, err)
			assert.True(t, fallback)
			assert.Contains(t, md, tt.want)
			assert.True(t, strings.HasSuffix(md, "\n"))
		})
	}
}

func TestGenerateFallsBackOnUnknownShape(t *testing.T) {
	inv := &stubInvoker{out: invoke.Outcome{Kind: invoke.Success, RawText: `{"lesson": {"introduction": "Bonjour"}}`, Attempts: 1}}
	g := NewGenerator(stubAssembler{asm: newAssembly()}, inv, logger.NewNopLogger())

	res := g.Generate(context.Background(), Request{})

	require.True(t, res.Success, res.Message)
	assert.True(t, res.Fallback)
	assert.Equal(t, MessageFallback, res.Message)
	assert.Contains(t, res.Markdown, "Bonjour")
}
