package notifications

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"hrportal/internal/platform/ids"
)

const (
	jobNotifyEmail  = "notify_email"
	jobPublishEvent = "publish_event"
)

type Service struct {
	store       StoreAPI
	Mailer      Mailer
	Publisher   Publisher
	Jobs        Dispatcher
	Recipients  Recipients
	DefaultFrom string
	Now         func() time.Time
}

func New(store StoreAPI, mailer Mailer, publisher Publisher, jobs Dispatcher, recipients Recipients) *Service {
	return &Service{
		store:       store,
		Mailer:      mailer,
		Publisher:   publisher,
		Jobs:        jobs,
		Recipients:  recipients,
		DefaultFrom: "no-reply@example.com",
		Now:         time.Now,
	}
}

// Notify stores an in-app notification for msg.UserID and hands e-mail and
// event delivery to the job queue. Delivery failures are logged, never returned.
func (s *Service) Notify(ctx context.Context, msg Message) {
	if s == nil || strings.TrimSpace(msg.UserID) == "" {
		return
	}
	now := s.now()
	n := Notification{
		ID:         ids.Sortable(),
		UserID:     msg.UserID,
		Type:       msg.Type,
		Title:      msg.Title,
		Body:       msg.Body,
		EntityType: msg.EntityType,
		EntityID:   msg.EntityID,
		CreatedAt:  now,
	}
	if err := s.store.Create(n); err != nil {
		slog.WarnContext(ctx, "notification create failed", "err", err)
		return
	}

	if s.Mailer != nil && s.Recipients != nil {
		s.dispatch(ctx, jobNotifyEmail, func(ctx context.Context) error {
			user, err := s.Recipients.FindByID(ctx, msg.UserID)
			if err != nil || user.Email == "" {
				return err
			}
			return s.Mailer.Send(ctx, s.DefaultFrom, user.Email, msg.Title, msg.Body)
		})
	}
	if s.Publisher != nil {
		event := Event{
			Type:       msg.Type,
			EntityType: msg.EntityType,
			EntityID:   msg.EntityID,
			ActorID:    msg.ActorID,
			SubjectID:  msg.UserID,
			Title:      msg.Title,
			OccurredAt: now,
		}
		s.dispatch(ctx, jobPublishEvent, func(ctx context.Context) error {
			return s.Publisher.Publish(ctx, event)
		})
	}
}

func (s *Service) dispatch(ctx context.Context, jobType string, run func(context.Context) error) {
	if s.Jobs != nil && s.Jobs.Enqueue(jobType, run) {
		return
	}
	if err := run(context.WithoutCancel(ctx)); err != nil {
		slog.WarnContext(ctx, "notification delivery failed", "jobType", jobType, "err", err)
	}
}

func (s *Service) List(_ context.Context, userID string, unreadOnly bool, limit, offset int) []Notification {
	items := s.store.ListByUser(userID, unreadOnly)
	if offset >= len(items) {
		return []Notification{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func (s *Service) UnreadCount(_ context.Context, userID string) int {
	return s.store.CountUnread(userID)
}

func (s *Service) MarkRead(_ context.Context, userID, id string) (Notification, error) {
	return s.store.MarkRead(userID, id)
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
