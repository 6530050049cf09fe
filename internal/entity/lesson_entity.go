package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	LessonContentStatusEmpty     = "empty"
	LessonContentStatusGenerated = "generated"
	LessonContentStatusFallback  = "fallback"
)

type Lesson struct {
	Id            uuid.UUID
	Title         string
	Level         string
	Module        string
	Description   string
	Content       string
	ContentStatus string
	GeneratedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
