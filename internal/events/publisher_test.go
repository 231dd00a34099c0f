package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestWatermillPublisherRoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	pubSub := NewGoChannelPubSub(logger)
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, TopicClassroom)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	publisher := NewWatermillPublisher(pubSub)
	want := Event{
		Type:       EventStudentEnrolled,
		UserID:     3,
		CourseID:   9,
		OccurredAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := publisher.Publish(ctx, want); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case msg := <-messages:
		var got Event
		if err := json.Unmarshal(msg.Payload, &got); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if got.Type != want.Type || got.UserID != want.UserID || got.CourseID != want.CourseID {
			t.Fatalf("got %+v, want %+v", got, want)
		}
		if msg.Metadata.Get("event_type") != string(EventStudentEnrolled) {
			t.Fatalf("unexpected event_type metadata: %q", msg.Metadata.Get("event_type"))
		}
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestMockEventPublisherRecords(t *testing.T) {
	mock := NewMockEventPublisher(nil)

	for i := 0; i < 3; i++ {
		if err := mock.Publish(context.Background(), Event{Type: EventProfileSaved, UserID: uint(i)}); err != nil {
			t.Fatalf("Publish failed: %v", err)
		}
	}

	got := mock.GetPublishedEvents()
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
}
