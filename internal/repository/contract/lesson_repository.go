package contract

import (
	"context"
	"time"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/entity"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/specification"

	"github.com/google/uuid"
)

type LessonRepository interface {
	Create(ctx context.Context, lesson *entity.Lesson) error
	Update(ctx context.Context, lesson *entity.Lesson) error
	// UpdateContent writes only the generated columns so concurrent metadata edits are kept.
	UpdateContent(ctx context.Context, id uuid.UUID, content, status string, generatedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lesson, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lesson, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
