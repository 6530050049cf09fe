package implementation

import (
	"context"
	"errors"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/entity"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/mapper"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/model"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/contract"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReferenceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReferenceMapper
}

func NewReferenceRepository(db *gorm.DB) contract.ReferenceRepository {
	return &ReferenceRepositoryImpl{
		db:     db,
		mapper: mapper.NewReferenceMapper(),
	}
}

func (r *ReferenceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ReferenceRepositoryImpl) Create(ctx context.Context, ref *entity.ReferenceDocument) error {
	m := r.mapper.ToModel(ref)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*ref = *r.mapper.ToEntity(m)
	return nil
}

func (r *ReferenceRepositoryImpl) Update(ctx context.Context, ref *entity.ReferenceDocument) error {
	m := r.mapper.ToModel(ref)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*ref = *r.mapper.ToEntity(m)
	return nil
}

func (r *ReferenceRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ReferenceDocument{}).Error
}

func (r *ReferenceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReferenceDocument, error) {
	var m model.ReferenceDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ReferenceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReferenceDocument, error) {
	var models []*model.ReferenceDocument
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ReferenceRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ReferenceDocument{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
