package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hrportal/internal/domain/auth"
	"hrportal/internal/platform/ids"
)

// Manager owns the session lifecycle: Login writes the profile, Hydrate
// restores it on every request and Logout clears it.
type Manager struct {
	Directory Authenticator
	Store     Store
	Secret    string
	TTL       time.Duration
	Now       func() time.Time
}

func NewManager(dir Authenticator, store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{Directory: dir, Store: store, Secret: secret, TTL: ttl, Now: time.Now}
}

func (m *Manager) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

func (m *Manager) Login(ctx context.Context, email, password string) (Session, string, error) {
	user, err := m.Directory.Authenticate(ctx, email, password)
	if err != nil {
		return Session{}, "", err
	}

	now := m.now().UTC()
	sess := Session{
		ID:        ids.New(),
		Profile:   ProfileFromUser(user),
		CreatedAt: now,
		ExpiresAt: now.Add(m.TTL),
	}
	if err := m.Store.Save(ctx, sess); err != nil {
		return Session{}, "", fmt.Errorf("persist session: %w", err)
	}

	token, err := auth.GenerateToken(m.Secret, auth.Claims{
		UserID:    user.ID,
		SessionID: sess.ID,
		Role:      user.Role.String(),
	}, m.TTL)
	if err != nil {
		_ = m.Store.Delete(ctx, sess.ID)
		return Session{}, "", fmt.Errorf("issue token: %w", err)
	}
	return sess, token, nil
}

// Hydrate resolves a bearer token to the stored user profile.
func (m *Manager) Hydrate(ctx context.Context, token string) (*auth.User, Session, error) {
	claims, err := auth.ParseToken(m.Secret, token)
	if err != nil {
		return nil, Session{}, err
	}
	sess, err := m.Store.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, Session{}, err
	}
	if sess.Profile.ID != claims.UserID {
		return nil, Session{}, auth.ErrInvalidToken
	}
	if sess.Expired(m.now()) {
		if err := m.Store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return nil, Session{}, err
		}
		return nil, Session{}, ErrExpired
	}
	return sess.Profile.User(), sess, nil
}

func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrNotFound
	}
	return m.Store.Delete(ctx, sessionID)
}

func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	return m.Store.PurgeExpired(ctx, m.now())
}
