package session

import (
	"context"
	"time"

	"hrportal/internal/domain/auth"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=store_iface.go -destination=../../mocks/session_store.go -package=mocks

type Store interface {
	Save(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (auth.User, error)
}
