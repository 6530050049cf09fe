package dto

import "github.com/google/uuid"

type SearchReferencesRequest struct {
	Query string `query:"q" validate:"required,min=2,max=200"`
	Tag   string `query:"tag" validate:"max=64"`
}

type ReferenceSnippetResponse struct {
	ReferenceId uuid.UUID `json:"reference_id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
}
