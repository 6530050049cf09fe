package service

import (
	"context"
	"strings"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/dto"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/pkg/logger"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/ai/prompt"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/events"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/snippet"

	"github.com/google/uuid"
)

const referenceModule = "ReferenceService"

// ReferenceCatalog is the cached reference store shared with prompt assembly.
type ReferenceCatalog interface {
	prompt.ReferenceStore
	Invalidate()
	InvalidateReference(id uuid.UUID)
}

type IReferenceService interface {
	Search(ctx context.Context, req *dto.SearchReferencesRequest) ([]*dto.ReferenceSnippetResponse, error)
	HandleReferenceEvent(ctx context.Context, event events.Event) error
}

type referenceService struct {
	catalog ReferenceCatalog
	logger  logger.ILogger
}

func NewReferenceService(catalog ReferenceCatalog, logger logger.ILogger) IReferenceService {
	return &referenceService{
		catalog: catalog,
		logger:  logger,
	}
}

func (s *referenceService) Search(ctx context.Context, req *dto.SearchReferencesRequest) ([]*dto.ReferenceSnippetResponse, error) {
	tag := strings.TrimSpace(req.Tag)
	corpus, err := s.catalog.FindAll(ctx, tag)
	if err != nil {
		return nil, err
	}

	snippets := snippet.Extract(corpus, req.Query, tag)
	res := make([]*dto.ReferenceSnippetResponse, 0, len(snippets))
	for _, sn := range snippets {
		res = append(res, &dto.ReferenceSnippetResponse{
			ReferenceId: sn.ReferenceId,
			Title:       sn.Title,
			Excerpt:     sn.Excerpt,
		})
	}
	return res, nil
}

// HandleReferenceEvent drops cached references when the corpus changes elsewhere.
func (s *referenceService) HandleReferenceEvent(ctx context.Context, event events.Event) error {
	if id, ok := events.ReferenceIdFrom(event); ok {
		s.catalog.InvalidateReference(id)
		s.logger.Info(referenceModule, "Reference cache entry dropped", map[string]interface{}{
			"reference_id": id.String(),
			"event":        event.EventType(),
		})
		return nil
	}

	s.catalog.Invalidate()
	s.logger.Info(referenceModule, "Reference cache flushed", map[string]interface{}{
		"event": event.EventType(),
	})
	return nil
}
