package auth

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is one of the three provisioned access tiers.
type Role uint8

const (
	RoleEmployee Role = iota + 1
	RoleHR
	RoleAdmin
)

func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin, nil
	case "hr":
		return RoleHR, nil
	case "employee":
		return RoleEmployee, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, raw)
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleHR:
		return "hr"
	case RoleEmployee:
		return "employee"
	default:
		return "unknown"
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	default:
		return false
	}
}

// Supervisory roles see and act on every employee's records.
func (r Role) Supervisory() bool {
	switch r {
	case RoleAdmin, RoleHR:
		return true
	case RoleEmployee:
		return false
	default:
		return false
	}
}

func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, r)
	}
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseRole(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
