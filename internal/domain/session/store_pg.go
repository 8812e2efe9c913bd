package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) Save(ctx context.Context, sess Session) error {
	profile, err := json.Marshal(sess.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	q, args, err := sq.Insert("sessions").
		Columns("id", "user_id", "profile", "created_at", "expires_at").
		Values(sess.ID, sess.Profile.ID, profile, sess.CreatedAt, sess.ExpiresAt).
		Suffix("ON CONFLICT (id) DO UPDATE SET profile = EXCLUDED.profile, expires_at = EXCLUDED.expires_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.DB.Exec(ctx, q, args...); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *PGStore) Get(ctx context.Context, id string) (Session, error) {
	q, args, err := sq.Select("id", "profile", "created_at", "expires_at").
		From("sessions").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return Session{}, err
	}

	var (
		sess    Session
		profile []byte
	)
	err = s.DB.QueryRow(ctx, q, args...).Scan(&sess.ID, &profile, &sess.CreatedAt, &sess.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	if err := json.Unmarshal(profile, &sess.Profile); err != nil {
		return Session{}, fmt.Errorf("decode profile: %w", err)
	}
	return sess, nil
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	q, args, err := sq.Delete("sessions").Where(sq.Eq{"id": id}).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return err
	}
	if _, err := s.DB.Exec(ctx, q, args...); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *PGStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	q, args, err := sq.Delete("sessions").Where(sq.LtOrEq{"expires_at": now}).PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return 0, err
	}
	tag, err := s.DB.Exec(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
