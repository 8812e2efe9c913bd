package records

import (
	"context"

	"hrportal/internal/domain/notifications"
)

type Auditor interface {
	Log(ctx context.Context, actorID, action, entityType, entityID string, before, after any)
}

type Notifier interface {
	Notify(ctx context.Context, msg notifications.Message)
}

type TransitionRecorder interface {
	RecordTransition(kind, action string, err error)
}

// People resolves employee display names for new records.
type People interface {
	DisplayName(ctx context.Context, employeeID string) (string, error)
}

// Hooks fans a lifecycle transition out to audit, notifications and metrics.
// Every field is optional.
type Hooks struct {
	Audit    Auditor
	Notifier Notifier
	Metrics  TransitionRecorder
}

func (h Hooks) Transition(kind, action string, err error) {
	if h.Metrics != nil {
		h.Metrics.RecordTransition(kind, action, err)
	}
}

func (h Hooks) Record(ctx context.Context, actorID, action, entityType, entityID string, before, after any) {
	if h.Audit != nil {
		h.Audit.Log(ctx, actorID, action, entityType, entityID, before, after)
	}
}

func (h Hooks) Notify(ctx context.Context, msg notifications.Message) {
	if h.Notifier != nil {
		h.Notifier.Notify(ctx, msg)
	}
}
