package prompt

import (
	"context"
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/entity"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/pkg/logger"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/invoke"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/llm"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/snippet"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/storage"

	"github.com/google/uuid"
)

const module = "PromptAssembler"

const (
	// Below this many characters the extracted text is likely a scan; the file is sent instead.
	MinInlineTextLength = 500
	MaxExcerptLength    = 25000
	MaxFallbackSnippets = 5
)

// Tags whose documents are always attached when a file exists: layout matters for exercise sheets and manuals.
var attachmentTags = []string{"exercise", "exercises", "exercice", "exercices", "manual", "manuel"}

type LessonSummary struct {
	Id          uuid.UUID
	Title       string
	Level       string
	Module      string
	Description string
}

// ReferenceStore is the read side of the reference catalogue.
type ReferenceStore interface {
	// FindByID returns nil, nil when the reference does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ReferenceDocument, error)
	// FindAll returns every reference, or only those tagged tag when non-empty.
	FindAll(ctx context.Context, tag string) ([]*entity.ReferenceDocument, error)
}

type Assembly struct {
	Blocks         []llm.ContentBlock
	UsedReferences []string
}

func (a *Assembly) addText(text string) {
	a.Blocks = append(a.Blocks, llm.TextBlock{Text: text})
}

func (a *Assembly) addReference(title string) {
	for _, t := range a.UsedReferences {
		if t == title {
			return
		}
	}
	a.UsedReferences = append(a.UsedReferences, title)
}

type Assembler struct {
	store  ReferenceStore
	files  storage.FileStorage
	logger logger.ILogger
}

func NewAssembler(store ReferenceStore, files storage.FileStorage, logger logger.ILogger) *Assembler {
	return &Assembler{
		store:  store,
		files:  files,
		logger: logger,
	}
}

// Assemble builds the ordered content blocks for one generation: lesson block, one or two
// blocks per reference (or an aggregated snippet block when none were requested), then the task block.
func (a *Assembler) Assemble(ctx context.Context, lesson LessonSummary, referenceIds []uuid.UUID, instructions string) (*Assembly, error) {
	asm := &Assembly{}
	asm.addText(lessonBlock(lesson))

	if len(referenceIds) == 0 {
		if err := a.appendSnippets(ctx, asm, lesson); err != nil {
			return nil, err
		}
	} else {
		seen := make(map[uuid.UUID]struct{}, len(referenceIds))
		for _, id := range referenceIds {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}

			ref, err := a.store.FindByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("load reference %s: %w", id, err)
			}
			if ref == nil {
				a.logger.Warn(module, "Requested reference not found, skipping", map[string]interface{}{
					"reference_id": id.String(),
				})
				continue
			}
			a.appendReference(ctx, asm, ref)
		}
	}

	asm.addText(instructionBlock(instructions))
	return asm, nil
}

func (a *Assembler) appendReference(ctx context.Context, asm *Assembly, ref *entity.ReferenceDocument) {
	asm.addReference(ref.Title)

	if !shouldAttach(ref) {
		asm.addText(excerptBlock(ref))
		return
	}

	data, err := a.files.Read(ctx, ref.FileUrl)
	if err != nil {
		a.logger.Warn(module, "Attachment unavailable, using text excerpt", map[string]interface{}{
			"category":     string(invoke.CategoryAttachmentUnavailable),
			"reference_id": ref.Id.String(),
			"file_url":     ref.FileUrl,
			"error":        err.Error(),
		})
		asm.addText(excerptBlock(ref))
		return
	}

	mimeType := storage.DetectMimeType(data)
	asm.addText(fmt.Sprintf("<reference type=\"attachment\">\nDocument joint : %s (%s)\n</reference>", ref.Title, mimeType))
	asm.Blocks = append(asm.Blocks, llm.AttachmentBlock{
		Data:     data,
		MimeType: mimeType,
		Name:     path.Base(ref.FileUrl),
	})
}

func (a *Assembler) appendSnippets(ctx context.Context, asm *Assembly, lesson LessonSummary) error {
	corpus, err := a.store.FindAll(ctx, "")
	if err != nil {
		return fmt.Errorf("load reference corpus: %w", err)
	}

	snippets := snippet.Extract(corpus, lesson.Title, lesson.Level)
	if len(snippets) == 0 && strings.TrimSpace(lesson.Level) != "" {
		snippets = snippet.Extract(corpus, lesson.Title, "")
	}
	if len(snippets) == 0 {
		a.logger.Info(module, "No reference snippet matched the lesson", map[string]interface{}{
			"lesson": lesson.Title,
		})
		return nil
	}
	if len(snippets) > MaxFallbackSnippets {
		snippets = snippets[:MaxFallbackSnippets]
	}

	var b strings.Builder
	b.WriteString("<reference_snippets>\n")
	for _, s := range snippets {
		b.WriteString(fmt.Sprintf("[%s]\n%s\n\n", s.Title, s.Excerpt))
		asm.addReference(s.Title)
	}
	b.WriteString("</reference_snippets>")
	asm.addText(b.String())
	return nil
}

func shouldAttach(ref *entity.ReferenceDocument) bool {
	if !ref.HasFile() {
		return false
	}
	if isAttachmentType(ref) {
		return true
	}
	return utf8.RuneCountInString(strings.TrimSpace(ref.TextContent)) < MinInlineTextLength
}

func isAttachmentType(ref *entity.ReferenceDocument) bool {
	for _, tag := range attachmentTags {
		if ref.HasTag(tag) {
			return true
		}
	}
	return false
}

func lessonBlock(lesson LessonSummary) string {
	var b strings.Builder
	b.WriteString("<lesson>\n")
	b.WriteString("Titre : " + lesson.Title + "\n")
	if lesson.Level != "" {
		b.WriteString("Niveau : " + lesson.Level + "\n")
	}
	if lesson.Module != "" {
		b.WriteString("Module : " + lesson.Module + "\n")
	}
	if lesson.Description != "" {
		b.WriteString("Description : " + lesson.Description + "\n")
	}
	b.WriteString("</lesson>")
	return b.String()
}

func excerptBlock(ref *entity.ReferenceDocument) string {
	text := truncateRunes(strings.TrimSpace(ref.TextContent), MaxExcerptLength)
	if text == "" {
		text = "(contenu indisponible : ni texte extrait ni fichier lisible)"
	}
	return fmt.Sprintf("<reference type=\"text\" title=%q>\n%s\n</reference>", ref.Title, text)
}

func instructionBlock(instructions string) string {
	var b strings.Builder
	writeFormattingRules(&b)
	if extra := strings.TrimSpace(instructions); extra != "" {
		b.WriteString("\n<instructions>\n")
		b.WriteString(extra)
		b.WriteString("\n</instructions>")
	}
	return b.String()
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
