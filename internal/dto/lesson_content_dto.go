package dto

import (
	"time"

	"github.com/google/uuid"
)

type GenerateLessonContentRequest struct {
	LessonId     uuid.UUID   `json:"-"`
	ReferenceIds []uuid.UUID `json:"reference_ids" validate:"max=20,dive,required"`
	Instructions string      `json:"instructions" validate:"max=4000"`
}

type GenerateLessonContentResponse struct {
	Success        bool       `json:"success"`
	Message        string     `json:"message"`
	Category       string     `json:"category,omitempty"`
	LessonId       uuid.UUID  `json:"lesson_id"`
	Content        string     `json:"content,omitempty"`
	ContentStatus  string     `json:"content_status,omitempty"`
	UsedReferences []string   `json:"used_references"`
	Attempts       int        `json:"attempts"`
	Fallback       bool       `json:"fallback"`
	GeneratedAt    *time.Time `json:"generated_at,omitempty"`
}

type ShowLessonContentResponse struct {
	LessonId      uuid.UUID  `json:"lesson_id"`
	Title         string     `json:"title"`
	Level         string     `json:"level"`
	Content       string     `json:"content"`
	ContentStatus string     `json:"content_status"`
	GeneratedAt   *time.Time `json:"generated_at,omitempty"`
	Cached        bool       `json:"cached"`
}

// PublishContentGeneratedMessage travels on the in-process bus after a lesson's content is saved.
type PublishContentGeneratedMessage struct {
	LessonId       uuid.UUID `json:"lesson_id"`
	ContentStatus  string    `json:"content_status"`
	UsedReferences []string  `json:"used_references"`
	Attempts       int       `json:"attempts"`
}
