package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeLessonContentGenerated = "lesson.content_generated"
	// Published by the reference upload tool, outside this service.
	TypeReferenceUpdated = "reference.updated"
)

func NewLessonContentGenerated(lessonId uuid.UUID, status string, usedReferences []string, attempts int) BaseEvent {
	e := New(TypeLessonContentGenerated, map[string]interface{}{
		"lesson_id":       lessonId.String(),
		"content_status":  status,
		"used_references": usedReferences,
		"attempts":        attempts,
	})
	e.Data["generated_at"] = e.OccurredAt.Format(time.RFC3339)
	return e
}

// ReferenceIdFrom reads "reference_id" from a reference event payload.
func ReferenceIdFrom(e Event) (uuid.UUID, bool) {
	raw, ok := e.Payload()["reference_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
