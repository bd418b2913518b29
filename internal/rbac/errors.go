package rbac

import "errors"

var (
	// ErrUserNotFound is returned when a grant operation references a user
	// that does not exist. The graph is left unchanged.
	ErrUserNotFound = errors.New("user not found")

	// ErrRoleNotFound is returned when a grant operation references a role
	// name that does not exist. The graph is left unchanged.
	ErrRoleNotFound = errors.New("role not found")

	// ErrPermissionNotFound is returned when a grant operation references a
	// permission name that does not exist. The graph is left unchanged.
	ErrPermissionNotFound = errors.New("permission not found")
)
