package audit

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) Insert(ctx context.Context, e Event) error {
	q, args, err := sq.Insert("audit_events").
		Columns("id", "actor_id", "action", "entity_type", "entity_id", "request_id", "before_json", "after_json", "created_at").
		Values(e.ID, e.ActorID, e.Action, e.EntityType, e.EntityID, e.RequestID, nullJSON(e.Before), nullJSON(e.After), e.CreatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.DB.Exec(ctx, q, args...); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *PGStore) List(ctx context.Context, f Filter, limit, offset int) ([]Event, int, error) {
	stmt := sq.Select(
		"id",
		"actor_id",
		"action",
		"entity_type",
		"entity_id",
		"request_id",
		"created_at",
		"before_json",
		"after_json",
		"COUNT(*) OVER() AS total_count",
	).From("audit_events").PlaceholderFormat(sq.Dollar)

	stmt = applyFilter(stmt, f).OrderBy("created_at DESC", "id DESC").Offset(uint64(max(offset, 0)))
	if limit > 0 {
		stmt = stmt.Limit(uint64(limit))
	}

	q, args, err := stmt.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	out := make([]Event, 0, max(limit, 0))
	total := 0
	for rows.Next() {
		var (
			e             Event
			before, after []byte
		)
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &e.RequestID, &e.CreatedAt, &before, &after, &total); err != nil {
			return nil, 0, err
		}
		e.Before, e.After = before, after
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func applyFilter(stmt sq.SelectBuilder, f Filter) sq.SelectBuilder {
	if f.Action != "" {
		stmt = stmt.Where(sq.Eq{"action": f.Action})
	}
	if f.EntityType != "" {
		stmt = stmt.Where(sq.Eq{"entity_type": f.EntityType})
	}
	if f.EntityID != "" {
		stmt = stmt.Where(sq.Eq{"entity_id": f.EntityID})
	}
	if f.ActorID != "" {
		stmt = stmt.Where(sq.Eq{"actor_id": f.ActorID})
	}
	return stmt
}

func nullJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
