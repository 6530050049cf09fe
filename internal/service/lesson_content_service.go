package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/dto"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/entity"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/pkg/logger"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/specification"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/unitofwork"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/pipeline"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/prompt"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/cache"

	"github.com/google/uuid"
)

const lessonModule = "LessonContentService"

var ErrLessonNotFound = errors.New("lesson not found")

type ContentGenerator interface {
	Generate(ctx context.Context, req pipeline.Request) *pipeline.Result
}

// ContentCache holds the content read model per lesson. Implemented by cache.RenderCache.
type ContentCache interface {
	Get(ctx context.Context, lessonId uuid.UUID) (*cache.Entry, bool, error)
	Set(ctx context.Context, entry *cache.Entry) error
	Invalidate(ctx context.Context, lessonId uuid.UUID) error
}

type ILessonContentService interface {
	Generate(ctx context.Context, req *dto.GenerateLessonContentRequest) (*dto.GenerateLessonContentResponse, error)
	Show(ctx context.Context, lessonId uuid.UUID) (*dto.ShowLessonContentResponse, error)
}

type lessonContentService struct {
	uowFactory       unitofwork.RepositoryFactory
	generator        ContentGenerator
	publisherService IPublisherService
	cache            ContentCache
	logger           logger.ILogger
}

// NewLessonContentService accepts a nil cache; reads then always go to the database.
func NewLessonContentService(
	uowFactory unitofwork.RepositoryFactory,
	generator ContentGenerator,
	publisherService IPublisherService,
	contentCache ContentCache,
	logger logger.ILogger,
) ILessonContentService {
	return &lessonContentService{
		uowFactory:       uowFactory,
		generator:        generator,
		publisherService: publisherService,
		cache:            contentCache,
		logger:           logger,
	}
}

// Generate runs the pipeline for one lesson. A pipeline failure is not a Go error: the
// response carries Success=false and the "[CATEGORY] reason" message, and the stored
// content is left untouched.
func (s *lessonContentService) Generate(ctx context.Context, req *dto.GenerateLessonContentRequest) (*dto.GenerateLessonContentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	lesson, err := uow.LessonRepository().FindOne(ctx, specification.ByID{ID: req.LessonId})
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}

	res := s.generator.Generate(ctx, pipeline.Request{
		Lesson:       toSummary(lesson),
		ReferenceIds: req.ReferenceIds,
		Instructions: req.Instructions,
	})

	resp := &dto.GenerateLessonContentResponse{
		Success:        res.Success,
		Message:        res.Message,
		Category:       string(res.Category),
		LessonId:       lesson.Id,
		UsedReferences: res.UsedReferences,
		Attempts:       res.Attempts,
		Fallback:       res.Fallback,
	}
	if resp.UsedReferences == nil {
		resp.UsedReferences = []string{}
	}
	if !res.Success {
		return resp, nil
	}

	status := entity.LessonContentStatusGenerated
	if res.Fallback {
		status = entity.LessonContentStatusFallback
	}
	now := time.Now()
	if err := uow.LessonRepository().UpdateContent(ctx, lesson.Id, res.Markdown, status, now); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, lesson.Id); err != nil {
			s.logger.Warn(lessonModule, "Failed to invalidate rendered content", map[string]interface{}{
				"lesson_id": lesson.Id.String(),
				"error":     err.Error(),
			})
		}
	}

	msg, err := json.Marshal(dto.PublishContentGeneratedMessage{
		LessonId:       lesson.Id,
		ContentStatus:  status,
		UsedReferences: resp.UsedReferences,
		Attempts:       res.Attempts,
	})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msg); err != nil {
		s.logger.Warn(lessonModule, "Failed to publish content generated message", map[string]interface{}{
			"lesson_id": lesson.Id.String(),
			"error":     err.Error(),
		})
	}

	resp.Content = res.Markdown
	resp.ContentStatus = status
	resp.GeneratedAt = &now
	return resp, nil
}

// Show answers from the render cache when it can and only loads the lesson on a miss.
func (s *lessonContentService) Show(ctx context.Context, lessonId uuid.UUID) (*dto.ShowLessonContentResponse, error) {
	if s.cache != nil {
		entry, ok, err := s.cache.Get(ctx, lessonId)
		if err != nil {
			s.logger.Warn(lessonModule, "Render cache read failed", map[string]interface{}{
				"lesson_id": lessonId.String(),
				"error":     err.Error(),
			})
		}
		if ok {
			resp := showResponse(entry)
			resp.Cached = true
			return resp, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	lesson, err := uow.LessonRepository().FindOne(ctx, specification.ByID{ID: lessonId})
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, ErrLessonNotFound
	}

	entry := cacheEntry(lesson)
	if s.cache != nil && lesson.Content != "" {
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Warn(lessonModule, "Render cache write failed", map[string]interface{}{
				"lesson_id": lessonId.String(),
				"error":     err.Error(),
			})
		}
	}
	return showResponse(entry), nil
}

func cacheEntry(l *entity.Lesson) *cache.Entry {
	return &cache.Entry{
		LessonId:      l.Id,
		Title:         l.Title,
		Level:         l.Level,
		Content:       l.Content,
		ContentStatus: l.ContentStatus,
		GeneratedAt:   l.GeneratedAt,
	}
}

func showResponse(e *cache.Entry) *dto.ShowLessonContentResponse {
	return &dto.ShowLessonContentResponse{
		LessonId:      e.LessonId,
		Title:         e.Title,
		Level:         e.Level,
		Content:       e.Content,
		ContentStatus: e.ContentStatus,
		GeneratedAt:   e.GeneratedAt,
	}
}

func toSummary(l *entity.Lesson) prompt.LessonSummary {
	return prompt.LessonSummary{
		Id:          l.Id,
		Title:       l.Title,
		Level:       l.Level,
		Module:      l.Module,
		Description: l.Description,
	}
}
