package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReferenceDocument is a course reference (textbook chapter, exercise sheet,
// manual). Read-only for the generation pipeline.
type ReferenceDocument struct {
	Id          uuid.UUID
	Title       string
	TextContent string
	FileUrl     string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (r *ReferenceDocument) HasFile() bool {
	return strings.TrimSpace(r.FileUrl) != ""
}

// HasTag compares case-insensitively.
func (r *ReferenceDocument) HasTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	for _, t := range r.Tags {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}
