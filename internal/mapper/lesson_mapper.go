package mapper

import (
	"time"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/entity"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/model"
)

type LessonMapper struct{}

func NewLessonMapper() *LessonMapper {
	return &LessonMapper{}
}

func (m *LessonMapper) ToEntity(l *model.Lesson) *entity.Lesson {
	if l == nil {
		return nil
	}

	var updatedAt *time.Time
	if !l.UpdatedAt.IsZero() {
		t := l.UpdatedAt
		updatedAt = &t
	}

	return &entity.Lesson{
		Id:            l.Id,
		Title:         l.Title,
		Level:         l.Level,
		Module:        l.Module,
		Description:   l.Description,
		Content:       l.Content,
		ContentStatus: l.ContentStatus,
		GeneratedAt:   l.GeneratedAt,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *LessonMapper) ToModel(l *entity.Lesson) *model.Lesson {
	if l == nil {
		return nil
	}

	var updatedAt time.Time
	if l.UpdatedAt != nil {
		updatedAt = *l.UpdatedAt
	}

	status := l.ContentStatus
	if status == "" {
		status = entity.LessonContentStatusEmpty
	}

	return &model.Lesson{
		Id:            l.Id,
		Title:         l.Title,
		Level:         l.Level,
		Module:        l.Module,
		Description:   l.Description,
		Content:       l.Content,
		ContentStatus: status,
		GeneratedAt:   l.GeneratedAt,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *LessonMapper) ToEntities(lessons []*model.Lesson) []*entity.Lesson {
	entities := make([]*entity.Lesson, len(lessons))
	for i, l := range lessons {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
