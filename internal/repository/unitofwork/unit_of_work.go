package unitofwork

import (
	"context"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/contract"
)

type UnitOfWork interface {
	// Transaction runs fn against a unit of work bound to one database transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(tx UnitOfWork) error) error

	ReferenceRepository() contract.ReferenceRepository
	LessonRepository() contract.LessonRepository
}
