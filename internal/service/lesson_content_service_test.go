package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/dto"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/entity"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/pkg/logger"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/invoke"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/pipeline"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	res *pipeline.Result
	req pipeline.Request
}

func (g *stubGenerator) Generate(ctx context.Context, req pipeline.Request) *pipeline.Result {
	g.req = req
	return g.res
}

func newLesson() *entity.Lesson {
	return &entity.Lesson{
		Id:            uuid.New(),
		Title:         "Limites",
		Level:         "1bac",
		Module:        "Analyse",
		ContentStatus: entity.LessonContentStatusEmpty,
	}
}

func TestGenerateStoresContent(t *testing.T) {
	lesson := newLesson()
	repo := newLessonRepo(lesson)
	cache := newFakeCache()
	pub := &recordingPublisher{}
	gen := &stubGenerator{res: &pipeline.Result{
		Success:        true,
		Message:        pipeline.MessageGenerated,
		Markdown:       "# Limites\n",
		UsedReferences: []string{"Cours"},
		Attempts:       2,
	}}
	svc := NewLessonContentService(fakeFactory{lessons: repo}, gen, pub, cache, logger.NewNopLogger())

	refId := uuid.New()
	res, err := svc.Generate(context.Background(), &dto.GenerateLessonContentRequest{
		LessonId:     lesson.Id,
		ReferenceIds: []uuid.UUID{refId},
		Instructions: "Ajoute des exemples.",
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "# Limites\n", res.Content)
	assert.Equal(t, entity.LessonContentStatusGenerated, res.ContentStatus)
	assert.NotNil(t, res.GeneratedAt)

	assert.Equal(t, "Limites", gen.req.Lesson.Title)
	assert.Equal(t, []uuid.UUID{refId}, gen.req.ReferenceIds)
	assert.Equal(t, "Ajoute des exemples.", gen.req.Instructions)

	require.Len(t, repo.updates, 1)
	assert.Equal(t, entity.LessonContentStatusGenerated, repo.updates[0].status)
	assert.Equal(t, []uuid.UUID{lesson.Id}, cache.invalidated)

	require.Len(t, pub.payloads, 1)
	var msg dto.PublishContentGeneratedMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Equal(t, lesson.Id, msg.LessonId)
	assert.Equal(t, 2, msg.Attempts)
}

func TestGenerateMarksFallback(t *testing.T) {
	lesson := newLesson()
	repo := newLessonRepo(lesson)
	gen := &stubGenerator{res: &pipeline.Result{Success: true, Markdown: "texte brut\n", Fallback: true, Attempts: 1}}
	svc := NewLessonContentService(fakeFactory{lessons: repo}, gen, &recordingPublisher{}, nil, logger.NewNopLogger())

	res, err := svc.Generate(context.Background(), &dto.GenerateLessonContentRequest{LessonId: lesson.Id})
	require.NoError(t, err)

	assert.True(t, res.Fallback)
	assert.Equal(t, entity.LessonContentStatusFallback, res.ContentStatus)
	assert.Equal(t, []string{}, res.UsedReferences)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, entity.LessonContentStatusFallback, repo.updates[0].status)
}

func TestGenerateFailureKeepsStoredContent(t *testing.T) {
	lesson := newLesson()
	lesson.Content = "ancien contenu"
	repo := newLessonRepo(lesson)
	pub := &recordingPublisher{}
	gen := &stubGenerator{res: &pipeline.Result{
		Category: invoke.CategoryOverloaded,
		Message:  "[OVERLOADED] gemini error: status 503",
		Attempts: 4,
	}}
	svc := NewLessonContentService(fakeFactory{lessons: repo}, gen, pub, newFakeCache(), logger.NewNopLogger())

	res, err := svc.Generate(context.Background(), &dto.GenerateLessonContentRequest{LessonId: lesson.Id})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, "OVERLOADED", res.Category)
	assert.Equal(t, "[OVERLOADED] gemini error: status 503", res.Message)
	assert.Equal(t, 4, res.Attempts)
	assert.Empty(t, repo.updates)
	assert.Empty(t, pub.payloads)
	assert.Equal(t, "ancien contenu", repo.lessons[lesson.Id].Content)
}

func TestGenerateUnknownLesson(t *testing.T) {
	gen := &stubGenerator{}
	svc := NewLessonContentService(fakeFactory{lessons: newLessonRepo()}, gen, &recordingPublisher{}, nil, logger.NewNopLogger())

	_, err := svc.Generate(context.Background(), &dto.GenerateLessonContentRequest{LessonId: uuid.New()})
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestGenerateRepositoryError(t *testing.T) {
	repo := newLessonRepo()
	repo.err = errors.New("connection refused")
	svc := NewLessonContentService(fakeFactory{lessons: repo}, &stubGenerator{}, &recordingPublisher{}, nil, logger.NewNopLogger())

	_, err := svc.Generate(context.Background(), &dto.GenerateLessonContentRequest{LessonId: uuid.New()})
	assert.ErrorContains(t, err, "connection refused")
}

func TestShowReadsThroughCache(t *testing.T) {
	lesson := newLesson()
	lesson.Content = "# Limites\n"
	lesson.ContentStatus = entity.LessonContentStatusGenerated
	repo := newLessonRepo(lesson)
	contentCache := newFakeCache()
	svc := NewLessonContentService(fakeFactory{lessons: repo}, &stubGenerator{}, &recordingPublisher{}, contentCache, logger.NewNopLogger())

	first, err := svc.Show(context.Background(), lesson.Id)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, "# Limites\n", first.Content)

	second, err := svc.Show(context.Background(), lesson.Id)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, "# Limites\n", second.Content)
	assert.Equal(t, lesson.Title, second.Title)
	assert.Equal(t, entity.LessonContentStatusGenerated, second.ContentStatus)
	assert.Equal(t, 1, contentCache.sets)
	assert.Equal(t, 1, repo.finds)
}

func TestShowCacheHitSkipsRepository(t *testing.T) {
	lesson := newLesson()
	lesson.Content = "# Dérivation\n"
	lesson.ContentStatus = entity.LessonContentStatusFallback
	repo := newLessonRepo()
	contentCache := newFakeCache()
	require.NoError(t, contentCache.Set(context.Background(), cacheEntry(lesson)))
	svc := NewLessonContentService(fakeFactory{lessons: repo}, &stubGenerator{}, &recordingPublisher{}, contentCache, logger.NewNopLogger())

	res, err := svc.Show(context.Background(), lesson.Id)
	require.NoError(t, err)

	assert.True(t, res.Cached)
	assert.Equal(t, lesson.Id, res.LessonId)
	assert.Equal(t, lesson.Level, res.Level)
	assert.Equal(t, "# Dérivation\n", res.Content)
	assert.Equal(t, entity.LessonContentStatusFallback, res.ContentStatus)
	assert.Zero(t, repo.finds)
}

func TestShowWithoutCache(t *testing.T) {
	lesson := newLesson()
	svc := NewLessonContentService(fakeFactory{lessons: newLessonRepo(lesson)}, &stubGenerator{}, &recordingPublisher{}, nil, logger.NewNopLogger())

	res, err := svc.Show(context.Background(), lesson.Id)
	require.NoError(t, err)
	assert.Equal(t, entity.LessonContentStatusEmpty, res.ContentStatus)
	assert.Empty(t, res.Content)

	_, err = svc.Show(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrLessonNotFound)
}
