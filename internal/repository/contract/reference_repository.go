package contract

import (
	"context"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/entity"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/specification"

	"github.com/google/uuid"
)

type ReferenceRepository interface {
	Create(ctx context.Context, ref *entity.ReferenceDocument) error
	Update(ctx context.Context, ref *entity.ReferenceDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReferenceDocument, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReferenceDocument, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
