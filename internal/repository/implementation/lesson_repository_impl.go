package implementation

import (
	"context"
	"errors"
	"time"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/entity"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/mapper"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/model"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/contract"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LessonRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LessonMapper
}

func NewLessonRepository(db *gorm.DB) contract.LessonRepository {
	return &LessonRepositoryImpl{
		db:     db,
		mapper: mapper.NewLessonMapper(),
	}
}

func (r *LessonRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LessonRepositoryImpl) Create(ctx context.Context, lesson *entity.Lesson) error {
	m := r.mapper.ToModel(lesson)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*lesson = *r.mapper.ToEntity(m)
	return nil
}

func (r *LessonRepositoryImpl) Update(ctx context.Context, lesson *entity.Lesson) error {
	m := r.mapper.ToModel(lesson)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*lesson = *r.mapper.ToEntity(m)
	return nil
}

func (r *LessonRepositoryImpl) UpdateContent(ctx context.Context, id uuid.UUID, content, status string, generatedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Lesson{}).Where("id = ?", id).Updates(map[string]interface{}{
		"content":        content,
		"content_status": status,
		"generated_at":   generatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *LessonRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Lesson{}).Error
}

func (r *LessonRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lesson, error) {
	var m model.Lesson
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LessonRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lesson, error) {
	var models []*model.Lesson
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LessonRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Lesson{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
