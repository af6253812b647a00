package service

import (
	"context"
	"time"
)

// ProfileViewEvent is emitted when a public profile is fetched. Consumers use
// it for analytics; publishing is best-effort and never blocks the read path.
type ProfileViewEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	Username   string    `json:"username"`
	OwnerID    string    `json:"owner_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishProfileViewEvent publishes a profile view event for async processing
	PublishProfileViewEvent(ctx context.Context, event *ProfileViewEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
