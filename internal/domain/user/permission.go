package user

type Permission string

const (
	PermissionManageClients    Permission = "clients:manage"
	PermissionManageLevels     Permission = "levels:manage"
	PermissionManageLeaveTypes Permission = "leave_types:manage"
	PermissionManageEmployees  Permission = "employees:manage"
	PermissionDecideLeave      Permission = "leave:decide"
	PermissionRequestLeave     Permission = "leave:request"
	PermissionViewReports      Permission = "reports:view"
)

var rolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermissionManageClients,
		PermissionManageLevels,
		PermissionManageLeaveTypes,
		PermissionManageEmployees,
		PermissionDecideLeave,
		PermissionViewReports,
	},
	RoleClientAdmin: {
		PermissionManageLevels,
		PermissionManageLeaveTypes,
		PermissionManageEmployees,
		PermissionDecideLeave,
		PermissionViewReports,
	},
	RoleLineManager: {
		PermissionDecideLeave,
		PermissionRequestLeave,
	},
	RoleEmployee: {
		PermissionRequestLeave,
	},
}

func HasPermission(role Role, permission Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// IsElevated reports whether the role may act on leave requests it does not own.
func IsElevated(role Role) bool {
	return role == RoleSuperAdmin || role == RoleClientAdmin
}
