package records

import (
	"slices"
	"strings"
	"time"

	"hrportal/internal/domain/auth"
	"hrportal/internal/platform/ids"
)

// Comment is an entry in an append-only thread.
type Comment struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Text     string `json:"text"`
	Date     Date   `json:"date"`
}

func NewComment(actor *auth.User, text string, now time.Time) Comment {
	return Comment{
		ID:       ids.Sortable(),
		UserID:   actor.ID,
		UserName: actor.Name,
		Text:     strings.TrimSpace(text),
		Date:     DateOf(now),
	}
}

// Thread is an ordered comment list. Append is the only mutation.
type Thread []Comment

func (t Thread) Append(c Comment) Thread {
	return append(slices.Clip(t), c)
}

func (t Thread) Clone() Thread {
	if t == nil {
		return Thread{}
	}
	return slices.Clone(t)
}
