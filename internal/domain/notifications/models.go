package notifications

import "time"

type Notification struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	EntityType string    `json:"entityType,omitempty"`
	EntityID   string    `json:"entityId,omitempty"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Message is one notification request raised by a lifecycle transition.
type Message struct {
	UserID     string
	ActorID    string
	Type       string
	Title      string
	Body       string
	EntityType string
	EntityID   string
}

// Event is the lifecycle record published to the event stream.
type Event struct {
	Type       string    `json:"type"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	ActorID    string    `json:"actorId"`
	SubjectID  string    `json:"subjectId"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurredAt"`
}
