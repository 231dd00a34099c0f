package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// NewGoChannelPubSub builds the in-process pub/sub transport shared by the
// publisher and any subscribers.
func NewGoChannelPubSub(logger *slog.Logger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
}

// WatermillPublisher publishes events onto a watermill transport.
type WatermillPublisher struct {
	publisher message.Publisher
}

func NewWatermillPublisher(publisher message.Publisher) *WatermillPublisher {
	return &WatermillPublisher{publisher: publisher}
}

func (p *WatermillPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.SetContext(ctx)

	if err := p.publisher.Publish(TopicClassroom, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}

// RunActivityLogger consumes the classroom topic and writes one structured
// log line per event. It blocks until the context is cancelled or the
// subscription channel closes.
func RunActivityLogger(ctx context.Context, subscriber message.Subscriber, logger *slog.Logger) error {
	messages, err := subscriber.Subscribe(ctx, TopicClassroom)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", TopicClassroom, err)
	}

	for msg := range messages {
		var event Event
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			logger.Error("Dropping malformed event", "error", err, "message_id", msg.UUID)
			msg.Ack()
			continue
		}

		logger.Info("Classroom event",
			"type", event.Type,
			"user_id", event.UserID,
			"course_id", event.CourseID,
			"occurred_at", event.OccurredAt)
		msg.Ack()
	}

	return nil
}
