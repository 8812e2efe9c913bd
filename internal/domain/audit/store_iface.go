package audit

import "context"

type Store interface {
	Insert(ctx context.Context, e Event) error
	// List returns one page, newest first, plus the total match count.
	List(ctx context.Context, f Filter, limit, offset int) ([]Event, int, error)
}
