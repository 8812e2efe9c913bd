package auth

import (
	"fmt"
	"slices"
)

type User struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        Role     `json:"role"`
	Department  string   `json:"department"`
	Position    string   `json:"position,omitempty"`
	Manager     string   `json:"manager,omitempty"`
	Permissions []string `json:"permissions"`
}

// Every predicate below treats a nil user as unauthenticated and answers false.

func IsAuthenticated(user *User) bool {
	return user != nil
}

func IsAdmin(user *User) bool {
	return user != nil && user.Role == RoleAdmin
}

func IsHR(user *User) bool {
	return user != nil && user.Role == RoleHR
}

func IsHRorAdmin(user *User) bool {
	return user != nil && user.Role.Supervisory()
}

// HasRole passes for the required role and for admins.
func HasRole(user *User, required Role) bool {
	if user == nil {
		return false
	}
	return user.Role == required || user.Role == RoleAdmin
}

func HasPermission(user *User, perm string) bool {
	if user == nil {
		return false
	}
	return slices.Contains(user.Permissions, perm) || slices.Contains(user.Permissions, PermAll)
}

func HasAllPermissions(user *User, perms []string) bool {
	if user == nil {
		return false
	}
	if slices.Contains(user.Permissions, PermAll) {
		return true
	}
	for _, perm := range perms {
		if !slices.Contains(user.Permissions, perm) {
			return false
		}
	}
	return true
}

func IsResourceOwner(user *User, ownerID string) bool {
	return user != nil && user.ID == ownerID
}

func CanView(user *User, ownerID string) bool {
	if user == nil {
		return false
	}
	return IsHRorAdmin(user) || user.ID == ownerID
}

func CanEdit(user *User, ownerID string) bool {
	if user == nil {
		return false
	}
	if IsHRorAdmin(user) {
		return true
	}
	return user.ID == ownerID && HasPermission(user, PermEditSelf)
}

// Guard is the access requirement declared by a protected route.
type Guard struct {
	RequiredRole        *Role
	RequiredPermissions []string
}

func RequireRole(role Role) Guard {
	return Guard{RequiredRole: &role}
}

func RequirePermissions(perms ...string) Guard {
	return Guard{RequiredPermissions: perms}
}

func (g Guard) Check(user *User) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if g.RequiredRole != nil && !HasRole(user, *g.RequiredRole) {
		return &AccessError{Message: fmt.Sprintf("You need %s access for this page", *g.RequiredRole)}
	}
	if len(g.RequiredPermissions) > 0 && !HasAllPermissions(user, g.RequiredPermissions) {
		return &AccessError{Message: "You don't have permission to access this page"}
	}
	return nil
}

// Allows is Check reduced to a boolean.
func (g Guard) Allows(user *User) bool {
	return g.Check(user) == nil
}

// RequireView returns ErrForbidden unless user may view records owned by ownerID.
func RequireView(user *User, ownerID string) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if !CanView(user, ownerID) {
		return ErrForbidden
	}
	return nil
}

// RequireSupervisor returns ErrForbidden unless user is HR or admin.
func RequireSupervisor(user *User) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if !IsHRorAdmin(user) {
		return ErrForbidden
	}
	return nil
}
