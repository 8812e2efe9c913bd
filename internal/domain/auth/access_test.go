package auth

import (
	"errors"
	"testing"
)

func testUser(id string, role Role, perms ...string) *User {
	if len(perms) == 0 {
		perms = PermissionsFor(role)
	}
	return &User{ID: id, Name: "user " + id, Role: role, Permissions: perms}
}

func TestPredicatesRejectNilUser(t *testing.T) {
	checks := map[string]bool{
		"IsAuthenticated":   IsAuthenticated(nil),
		"IsAdmin":           IsAdmin(nil),
		"IsHR":              IsHR(nil),
		"IsHRorAdmin":       IsHRorAdmin(nil),
		"HasRole":           HasRole(nil, RoleEmployee),
		"HasPermission":     HasPermission(nil, PermViewSelf),
		"HasAllPermissions": HasAllPermissions(nil, nil),
		"IsResourceOwner":   IsResourceOwner(nil, ""),
		"CanView":           CanView(nil, "1"),
		"CanEdit":           CanEdit(nil, "1"),
	}
	for name, got := range checks {
		if got {
			t.Fatalf("%s(nil) should be false", name)
		}
	}
}

func TestRolePredicates(t *testing.T) {
	admin := testUser("1", RoleAdmin)
	hr := testUser("2", RoleHR)
	emp := testUser("3", RoleEmployee)

	if !IsAdmin(admin) || IsAdmin(hr) || IsAdmin(emp) {
		t.Fatal("IsAdmin mismatch")
	}
	if IsHR(admin) || !IsHR(hr) || IsHR(emp) {
		t.Fatal("IsHR mismatch")
	}
	if !IsHRorAdmin(admin) || !IsHRorAdmin(hr) || IsHRorAdmin(emp) {
		t.Fatal("IsHRorAdmin mismatch")
	}
	if !HasRole(admin, RoleHR) || !HasRole(hr, RoleHR) || HasRole(emp, RoleHR) {
		t.Fatal("HasRole mismatch")
	}
}

func TestHasPermissionHonoursAll(t *testing.T) {
	admin := testUser("1", RoleAdmin)
	emp := testUser("3", RoleEmployee)

	if !HasPermission(admin, PermApproveLeave) {
		t.Fatal("expected all to grant approve_leave")
	}
	if !HasPermission(emp, PermRequestLeave) || HasPermission(emp, PermEditSelf) {
		t.Fatal("unexpected employee permissions")
	}
	if !HasAllPermissions(admin, []string{PermEditSelf, PermManageWarnings}) {
		t.Fatal("expected all to satisfy every permission")
	}
	if HasAllPermissions(emp, []string{PermViewSelf, PermEditSelf}) {
		t.Fatal("expected missing edit_self to fail")
	}
	if !HasAllPermissions(emp, nil) {
		t.Fatal("expected empty requirement to pass")
	}
}

func TestCanViewMatchesRule(t *testing.T) {
	users := []*User{
		nil,
		testUser("1", RoleAdmin),
		testUser("2", RoleHR),
		testUser("3", RoleEmployee),
		testUser("4", RoleEmployee),
	}
	owners := []string{"1", "2", "3", "4", "99"}
	for _, u := range users {
		for _, owner := range owners {
			want := u != nil && (IsHRorAdmin(u) || u.ID == owner)
			if got := CanView(u, owner); got != want {
				t.Fatalf("CanView(%v, %s) = %v, want %v", u, owner, got, want)
			}
		}
	}
}

func TestCanEditRequiresEditSelfForOwner(t *testing.T) {
	plain := testUser("3", RoleEmployee)
	editor := testUser("3", RoleEmployee, PermViewSelf, PermEditSelf)
	hr := testUser("2", RoleHR)

	if CanEdit(plain, "3") {
		t.Fatal("owner without edit_self must not edit")
	}
	if !CanEdit(editor, "3") {
		t.Fatal("owner with edit_self should edit")
	}
	if CanEdit(editor, "4") {
		t.Fatal("edit_self does not extend to other owners")
	}
	if !CanEdit(hr, "4") {
		t.Fatal("hr edits every record")
	}
}

func TestGuardCheck(t *testing.T) {
	hrGuard := RequireRole(RoleHR)

	if err := hrGuard.Check(nil); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if err := hrGuard.Check(testUser("1", RoleAdmin)); err != nil {
		t.Fatalf("admin should pass hr guard: %v", err)
	}
	err := hrGuard.Check(testUser("3", RoleEmployee))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err.Error() != "You need hr access for this page" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	permGuard := Guard{RequiredRole: hrGuard.RequiredRole, RequiredPermissions: []string{PermApproveLeave}}
	if !permGuard.Allows(testUser("2", RoleHR)) {
		t.Fatal("hr with approve_leave should pass")
	}
	if permGuard.Allows(testUser("2", RoleHR, PermViewEmployees)) {
		t.Fatal("hr without approve_leave should fail")
	}
	if !(Guard{}).Allows(testUser("3", RoleEmployee)) {
		t.Fatal("empty guard admits any authenticated user")
	}
}

func TestParseRole(t *testing.T) {
	for raw, want := range map[string]Role{"admin": RoleAdmin, "HR": RoleHR, " employee ": RoleEmployee} {
		got, err := ParseRole(raw)
		if err != nil || got != want {
			t.Fatalf("ParseRole(%q) = %v, %v", raw, got, err)
		}
	}
	if _, err := ParseRole("manager"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected unknown role, got %v", err)
	}
}
