package auth

// Permission constants define the available permissions in the system.
// These are used for role-based access control (RBAC) to restrict access
// to specific resources and actions. Names follow resource.action[.qualifier];
// the ".all" qualifier marks the acts-on-any-instance variant of a capability.
const (
	// PermMenuView allows viewing menus.
	PermMenuView = "menu.view"
	// PermMenuCreate allows creating menu items.
	PermMenuCreate = "menu.create"
	// PermMenuUpdate allows updating menu items.
	PermMenuUpdate = "menu.update"
	// PermMenuDelete allows deleting menu items.
	PermMenuDelete = "menu.delete"
	// PermMenuViewAll allows acting on every menu regardless of owner.
	PermMenuViewAll = "menu.view.all"

	// PermOrderView allows viewing orders.
	PermOrderView = "order.view"
	// PermOrderCreate allows placing orders.
	PermOrderCreate = "order.create"
	// PermOrderUpdate allows updating orders.
	PermOrderUpdate = "order.update"
	// PermOrderViewAll allows viewing every order regardless of owner.
	PermOrderViewAll = "order.view.all"
	// PermOrderUpdateStatus allows changing an order's fulfillment status.
	PermOrderUpdateStatus = "order.update.status"

	// PermCartView allows viewing the own cart.
	PermCartView = "cart.view"
	// PermCartAdd allows adding items to the cart.
	PermCartAdd = "cart.add"
	// PermCartUpdate allows changing cart item quantities.
	PermCartUpdate = "cart.update"
	// PermCartDelete allows removing cart items.
	PermCartDelete = "cart.delete"

	// PermUserView allows viewing user accounts.
	PermUserView = "user.view"
	// PermUserCreate allows creating user accounts.
	PermUserCreate = "user.create"
	// PermUserUpdate allows updating user accounts.
	PermUserUpdate = "user.update"
	// PermUserDelete allows deleting user accounts.
	PermUserDelete = "user.delete"

	// PermRoleView allows listing roles.
	PermRoleView = "role.view"
	// PermRoleCreate allows creating roles.
	PermRoleCreate = "role.create"
	// PermRoleUpdate allows updating roles and their permission sets.
	PermRoleUpdate = "role.update"
	// PermRoleDelete allows deleting roles.
	PermRoleDelete = "role.delete"
	// PermPermissionView allows listing permissions.
	PermPermissionView = "permission.view"
	// PermPermissionAssign allows assigning permissions to roles and users.
	PermPermissionAssign = "permission.assign"
)

// Role name constants for the built-in roles.
const (
	// RoleCustomer is the default role for new registrations.
	RoleCustomer = "customer"
	// RoleMerchant manages menus and fulfills orders.
	RoleMerchant = "merchant"
	// RoleAdmin holds every permission.
	RoleAdmin = "admin"
	// RoleSuperAdmin holds every permission and manages the graph itself.
	RoleSuperAdmin = "superadmin"
)
