package rbac

const (
	RoleStudent = "student"
	RoleParent  = "parent"
	RoleAdmin   = "admin"
)

// RolePermissions is the default policy. Parents build and import quizzes for
// their children; students may also build their own.
var RolePermissions = map[string][]string{
	RoleStudent: {
		"quiz:create",
		"quiz:import",
		"quiz:view",
		"quiz:check",
		"quiz:delete_own",
		"user:change_password",
	},
	RoleParent: {
		"quiz:*",
		"users:list",
		"user:change_password",
	},
	RoleAdmin: {
		"*",
	},
}

// ValidRole reports whether role appears in the default policy.
func ValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}
