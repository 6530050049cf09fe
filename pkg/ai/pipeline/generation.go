package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/pkg/logger"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/invoke"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/prompt"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/latex"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/llm"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/render"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	module     = "GenerationPipeline"
	tracerName = "github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/pipeline"
)

const CategoryAssemblyFailure invoke.Category = "ASSEMBLY_FAILURE"

var ErrEmptyOutput = errors.New("provider returned an empty answer")

const (
	MessageGenerated = "Contenu généré avec succès"
	MessageFallback  = "Contenu généré sans structure, texte brut conservé"
)

type ContentAssembler interface {
	Assemble(ctx context.Context, lesson prompt.LessonSummary, referenceIds []uuid.UUID, instructions string) (*prompt.Assembly, error)
}

type Invoker interface {
	Invoke(ctx context.Context, system string, blocks []llm.ContentBlock) invoke.Outcome
}

type Request struct {
	Lesson       prompt.LessonSummary
	ReferenceIds []uuid.UUID
	Instructions string
}

// Result is the only thing handed back to callers; failures never surface as Go errors.
type Result struct {
	Success        bool
	Message        string
	Category       invoke.Category
	Markdown       string
	UsedReferences []string
	Attempts       int
	Fallback       bool
}

type Generator struct {
	assembler  ContentAssembler
	invoker    Invoker
	logger     logger.ILogger
	exchange   logger.ILogger
	renderOpts []render.Option
}

type GeneratorOption func(*Generator)

func WithRenderOptions(opts ...render.Option) GeneratorOption {
	return func(g *Generator) {
		g.renderOpts = append(g.renderOpts, opts...)
	}
}

// WithExchangeLogger records every raw provider answer, usually to a file-only logger.
func WithExchangeLogger(l logger.ILogger) GeneratorOption {
	return func(g *Generator) {
		g.exchange = l
	}
}

func NewGenerator(assembler ContentAssembler, invoker Invoker, logger logger.ILogger, opts ...GeneratorOption) *Generator {
	g := &Generator{
		assembler: assembler,
		invoker:   invoker,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Generate(ctx context.Context, req Request) *Result {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "pipeline.Generate", trace.WithAttributes(
		attribute.String("lesson.id", req.Lesson.Id.String()),
		attribute.Int("references.requested", len(req.ReferenceIds)),
	))
	defer span.End()

	asm, err := g.assembler.Assemble(ctx, req.Lesson, req.ReferenceIds, req.Instructions)
	if err != nil {
		return g.fail(span, &Result{}, CategoryAssemblyFailure, err.Error())
	}
	span.SetAttributes(attribute.Int("prompt.blocks", len(asm.Blocks)))

	out := g.invoker.Invoke(ctx, prompt.SystemInstruction, asm.Blocks)
	res := &Result{Attempts: out.Attempts}
	span.SetAttributes(attribute.Int("provider.attempts", out.Attempts))
	if out.Kind != invoke.Success {
		return g.fail(span, res, out.Category, out.Reason)
	}
	if g.exchange != nil {
		g.exchange.Info(module, "Provider answer", map[string]interface{}{
			"lesson_id": req.Lesson.Id.String(),
			"attempts":  out.Attempts,
			"raw":       out.RawText,
		})
	}

	markdown, fallback, err := ToMarkdown(out.RawText, g.renderOpts...)
	if err != nil {
		return g.fail(span, res, invoke.CategoryDecodeFailure, err.Error())
	}
	if fallback {
		g.logger.Warn(module, "Structured decode failed, keeping raw answer as document", map[string]interface{}{
			"lesson_id": req.Lesson.Id.String(),
			"raw_len":   len(out.RawText),
		})
	}

	res.Success = true
	res.Markdown = markdown
	res.Fallback = fallback
	res.UsedReferences = asm.UsedReferences
	res.Message = MessageGenerated
	if fallback {
		res.Message = MessageFallback
	}
	span.SetAttributes(attribute.Bool("render.fallback", fallback))
	return res
}

func (g *Generator) fail(span trace.Span, res *Result, category invoke.Category, reason string) *Result {
	res.Success = false
	res.Category = category
	res.Message = fmt.Sprintf("[%s] %s", category, reason)

	span.SetStatus(codes.Error, string(category))
	g.logger.Error(module, "Content generation failed", map[string]interface{}{
		"category": string(category),
		"attempts": res.Attempts,
		"error":    reason,
	})
	return res
}

// ToMarkdown turns a raw provider answer into canonical markdown: fence strip, escape repair,
// decode, render. When the repaired text does not decode, or decodes to a record with no
// renderable section, the fence-stripped answer itself is kept as the document and fallback is true.
func ToMarkdown(raw string, opts ...render.Option) (markdown string, fallback bool, err error) {
	stripped := latex.StripCodeFence(raw)
	if strings.TrimSpace(stripped) == "" {
		return "", false, ErrEmptyOutput
	}

	// undecodable text and records with no known section both keep the answer as the document
	doc, decodeErr := latex.Decode(latex.Repair(stripped))
	if decodeErr == nil {
		markdown = render.Render(doc, opts...)
	}
	if markdown == "" {
		return render.NormalizeText(stripped) + "\n", true, nil
	}
	return markdown, false, nil
}
