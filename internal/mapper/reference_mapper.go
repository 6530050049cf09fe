package mapper

import (
	"time"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/entity"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/model"

	"gorm.io/datatypes"
)

type ReferenceMapper struct{}

func NewReferenceMapper() *ReferenceMapper {
	return &ReferenceMapper{}
}

func (m *ReferenceMapper) ToEntity(r *model.ReferenceDocument) *entity.ReferenceDocument {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	tags := make([]string, len(r.Tags))
	copy(tags, r.Tags)

	return &entity.ReferenceDocument{
		Id:          r.Id,
		Title:       r.Title,
		TextContent: r.TextContent,
		FileUrl:     r.FileUrl,
		Tags:        tags,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *ReferenceMapper) ToModel(r *entity.ReferenceDocument) *model.ReferenceDocument {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	tags := datatypes.JSONSlice[string]{}
	tags = append(tags, r.Tags...)

	return &model.ReferenceDocument{
		Id:          r.Id,
		Title:       r.Title,
		TextContent: r.TextContent,
		FileUrl:     r.FileUrl,
		Tags:        tags,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *ReferenceMapper) ToEntities(refs []*model.ReferenceDocument) []*entity.ReferenceDocument {
	entities := make([]*entity.ReferenceDocument, len(refs))
	for i, r := range refs {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
