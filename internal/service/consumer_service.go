package service

import (
	"context"
	"encoding/json"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/dto"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/pkg/logger"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/specification"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/repository/unitofwork"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

const consumerModule = "ConsumerService"

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService follows up on saved content: it warms the render cache and
// announces the new content on the event stream.
type consumerService struct {
	subscriber     message.Subscriber
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	cache          ContentCache
	eventPublisher EventPublisher
	logger         logger.ILogger
}

// NewConsumerService accepts a nil cache and a nil eventPublisher.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	contentCache ContentCache,
	eventPublisher EventPublisher,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:     subscriber,
		topicName:      topicName,
		uowFactory:     uowFactory,
		cache:          contentCache,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishContentGeneratedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(consumerModule, "Failed to unmarshal message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		// invalid payloads would be redelivered forever
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	lesson, err := uow.LessonRepository().FindOne(ctx, specification.ByID{ID: payload.LessonId})
	if err != nil {
		cs.logger.Error(consumerModule, "Failed to load lesson", map[string]interface{}{
			"lesson_id": payload.LessonId.String(),
			"error":     err.Error(),
		})
		msg.Nack()
		return
	}
	if lesson == nil {
		cs.logger.Warn(consumerModule, "Lesson vanished before follow-up", map[string]interface{}{
			"lesson_id": payload.LessonId.String(),
		})
		msg.Ack()
		return
	}

	if cs.cache != nil && lesson.Content != "" {
		if err := cs.cache.Set(ctx, cacheEntry(lesson)); err != nil {
			cs.logger.Warn(consumerModule, "Failed to warm render cache", map[string]interface{}{
				"lesson_id": lesson.Id.String(),
				"error":     err.Error(),
			})
		}
	}

	if cs.eventPublisher != nil {
		evt := events.NewLessonContentGenerated(lesson.Id, payload.ContentStatus, payload.UsedReferences, payload.Attempts)
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.logger.Warn(consumerModule, "Failed to publish event", map[string]interface{}{
				"event": evt.EventType(),
				"error": err.Error(),
			})
		}
	}

	cs.logger.Info(consumerModule, "Lesson content follow-up done", map[string]interface{}{
		"lesson_id": lesson.Id.String(),
		"status":    payload.ContentStatus,
	})
	msg.Ack()
}
