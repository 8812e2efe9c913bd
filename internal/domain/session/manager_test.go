package session_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/session"
	"hrportal/internal/mocks"
	"hrportal/internal/platform/db"
)

func newDirectory(t *testing.T) *auth.Directory {
	t.Helper()
	dir := auth.NewDirectory()
	require.NoError(t, dir.Provision(auth.User{
		ID: "2", Name: "HR Manager", Email: "hr@company.com", Role: auth.RoleHR, Department: "Human Resources",
	}, "hr123"))
	return dir
}

func TestLoginHydrateLogout(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	mgr := session.NewManager(newDirectory(t), store, "secret", time.Hour)

	sess, token, err := mgr.Login(ctx, "hr@company.com", "hr123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "HR Manager", sess.Profile.Name)

	user, hydrated, err := mgr.Hydrate(ctx, token)
	require.NoError(t, err)
	require.Equal(t, sess.ID, hydrated.ID)
	require.True(t, auth.IsHR(user))
	require.True(t, auth.HasPermission(user, auth.PermApproveLeave))

	require.NoError(t, mgr.Logout(ctx, sess.ID))
	_, _, err = mgr.Hydrate(ctx, token)
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	mgr := session.NewManager(newDirectory(t), session.NewMemoryStore(), "secret", time.Hour)
	_, _, err := mgr.Login(context.Background(), "hr@company.com", "nope")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestHydrateExpiredSessionIsRemoved(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	mgr := session.NewManager(newDirectory(t), store, "secret", time.Hour)

	sess, token, err := mgr.Login(ctx, "hr@company.com", "hr123")
	require.NoError(t, err)

	mgr.Now = func() time.Time { return sess.ExpiresAt.Add(time.Second) }
	_, _, err = mgr.Hydrate(ctx, token)
	require.ErrorIs(t, err, session.ErrExpired)

	_, err = store.Get(ctx, sess.ID)
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestPurgeExpired(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, session.Session{ID: "old", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, store.Save(ctx, session.Session{ID: "live", ExpiresAt: now.Add(time.Minute)}))

	purged, err := store.PurgeExpired(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, purged)

	_, err = store.Get(ctx, "live")
	require.NoError(t, err)
}

func TestLoginRollsBackWhenStoreFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	dir := mocks.NewMockAuthenticator(ctrl)
	store := mocks.NewMockStore(ctrl)

	dir.EXPECT().Authenticate(gomock.Any(), "hr@company.com", "hr123").
		Return(auth.User{ID: "2", Role: auth.RoleHR}, nil)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	mgr := session.NewManager(dir, store, "secret", time.Hour)
	_, _, err := mgr.Login(context.Background(), "hr@company.com", "hr123")
	require.Error(t, err)
	require.Contains(t, err.Error(), "persist session")
}

func TestHydrateRejectsForeignSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	token, err := auth.GenerateToken("secret", auth.Claims{UserID: "3", SessionID: "s1"}, time.Hour)
	require.NoError(t, err)
	store.EXPECT().Get(gomock.Any(), "s1").Return(session.Session{
		ID:        "s1",
		Profile:   session.Profile{ID: "2"},
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)

	mgr := session.NewManager(nil, store, "secret", time.Hour)
	_, _, err = mgr.Hydrate(context.Background(), token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestPGStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, db.Migrate(dsn))
	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	defer pool.Close()

	ctx := context.Background()
	store := session.NewPGStore(pool)
	sess := session.Session{
		ID:        "pg-test-" + time.Now().Format("150405.000000"),
		Profile:   session.Profile{ID: "3", Name: "John Smith", Role: auth.RoleEmployee, Permissions: []string{auth.PermViewSelf}},
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, auth.RoleEmployee, got.Profile.Role)
	require.Equal(t, []string{auth.PermViewSelf}, got.Profile.Permissions)

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	require.ErrorIs(t, err, session.ErrNotFound)
}
