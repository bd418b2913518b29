// Package rbac implements the authorization engine: resolving a user's
// effective role and permission sets from the database backed graph and
// mutating that graph through idempotent administration operations.
//
// Permissions are opaque names checked with set membership; the dotted
// resource.action[.qualifier] convention is naming only. Every check
// recomputes from current graph state, so administration mutations are
// visible to the very next check without an invalidation protocol.
package rbac
