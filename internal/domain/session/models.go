package session

import (
	"slices"
	"time"

	"hrportal/internal/domain/auth"
)

// Profile is the persisted view of a logged-in user. It never carries credentials.
type Profile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        auth.Role `json:"role"`
	Department  string    `json:"department"`
	Position    string    `json:"position,omitempty"`
	Manager     string    `json:"manager,omitempty"`
	Permissions []string  `json:"permissions"`
}

type Session struct {
	ID        string    `json:"id"`
	Profile   Profile   `json:"profile"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func ProfileFromUser(u auth.User) Profile {
	return Profile{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Department:  u.Department,
		Position:    u.Position,
		Manager:     u.Manager,
		Permissions: slices.Clone(u.Permissions),
	}
}

func (p Profile) User() *auth.User {
	return &auth.User{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		Role:        p.Role,
		Department:  p.Department,
		Position:    p.Position,
		Manager:     p.Manager,
		Permissions: slices.Clone(p.Permissions),
	}
}
