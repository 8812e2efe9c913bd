package auth

const (
	PermAll               = "all"
	PermViewSelf          = "view_self"
	PermEditSelf          = "edit_self"
	PermRequestLeave      = "request_leave"
	PermViewEmployees     = "view_employees"
	PermEditEmployees     = "edit_employees"
	PermApproveLeave      = "approve_leave"
	PermManagePerformance = "manage_performance"
	PermManageWarnings    = "manage_warnings"
)

var DefaultPermissions = []string{
	PermAll,
	PermViewSelf,
	PermEditSelf,
	PermRequestLeave,
	PermViewEmployees,
	PermEditEmployees,
	PermApproveLeave,
	PermManagePerformance,
	PermManageWarnings,
}

// RolePermissions is the grant set a newly provisioned account receives.
var RolePermissions = map[Role][]string{
	RoleAdmin: {PermAll},
	RoleHR: {
		PermViewEmployees,
		PermEditEmployees,
		PermApproveLeave,
		PermManagePerformance,
		PermManageWarnings,
	},
	RoleEmployee: {
		PermViewSelf,
		PermRequestLeave,
	},
}

func PermissionsFor(role Role) []string {
	perms := RolePermissions[role]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}
