package specification

import "gorm.io/gorm"

// WithTag keeps references carrying tag, compared case-insensitively.
type WithTag struct {
	Tag string
}

func (s WithTag) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("EXISTS (SELECT 1 FROM jsonb_array_elements_text(reference_documents.tags) AS t(tag) WHERE lower(t.tag) = lower(?))", s.Tag)
}
