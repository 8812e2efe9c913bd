package notifications

import (
	"context"

	"hrportal/internal/domain/auth"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=store_iface.go -destination=../../mocks/notifications.go -package=mocks

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Dispatcher runs delivery work off the request path.
type Dispatcher interface {
	Enqueue(jobType string, run func(context.Context) error) bool
}

type Recipients interface {
	FindByID(ctx context.Context, id string) (auth.User, error)
}

type StoreAPI interface {
	Create(n Notification) error
	ListByUser(userID string, unreadOnly bool) []Notification
	CountUnread(userID string) int
	MarkRead(userID, id string) (Notification, error)
}
