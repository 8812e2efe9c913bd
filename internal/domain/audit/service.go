package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"hrportal/internal/platform/ids"
	"hrportal/internal/requestctx"
)

type Service struct {
	Store Store
	Now   func() time.Time
}

func New(store Store) *Service {
	return &Service{Store: store, Now: time.Now}
}

// Record stores one transition. The request id is taken from ctx.
func (s *Service) Record(ctx context.Context, actorID, action, entityType, entityID string, before, after any) error {
	e := Event{
		ID:         ids.Sortable(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		RequestID:  requestctx.GetRequestID(ctx),
		CreatedAt:  s.now(),
	}
	var err error
	if e.Before, err = marshal(before); err != nil {
		return fmt.Errorf("marshal before: %w", err)
	}
	if e.After, err = marshal(after); err != nil {
		return fmt.Errorf("marshal after: %w", err)
	}
	return s.Store.Insert(ctx, e)
}

// Log is Record for callers that must not fail on audit errors.
func (s *Service) Log(ctx context.Context, actorID, action, entityType, entityID string, before, after any) {
	if s == nil {
		return
	}
	if err := s.Record(ctx, actorID, action, entityType, entityID, before, after); err != nil {
		slog.WarnContext(ctx, "audit record failed", "action", action, "entityId", entityID, "err", err)
	}
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]Event, int, error) {
	return s.Store.List(ctx, f, limit, offset)
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func marshal(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
