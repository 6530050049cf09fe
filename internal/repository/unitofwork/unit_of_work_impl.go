package unitofwork

import (
	"context"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/contract"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{db: db}
}

func (u *UnitOfWorkImpl) Transaction(ctx context.Context, fn func(tx UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UnitOfWorkImpl{db: tx})
	})
}

func (u *UnitOfWorkImpl) ReferenceRepository() contract.ReferenceRepository {
	return implementation.NewReferenceRepository(u.db)
}

func (u *UnitOfWorkImpl) LessonRepository() contract.LessonRepository {
	return implementation.NewLessonRepository(u.db)
}
