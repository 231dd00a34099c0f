package events

import (
	"context"
	"time"
)

// TopicClassroom is the single in-process topic all domain events share.
const TopicClassroom = "classroom.events"

type EventType string

const (
	EventCourseCreated   EventType = "course.created"
	EventStudentEnrolled EventType = "student.enrolled"
	EventProfileSaved    EventType = "profile.saved"
)

// Event is the envelope published after a mutating operation succeeds.
type Event struct {
	Type       EventType `json:"type"`
	UserID     uint      `json:"user_id,omitempty"`
	CourseID   uint      `json:"course_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher publishes domain events. Publishing is best-effort: a
// failed publish must never fail the operation that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
