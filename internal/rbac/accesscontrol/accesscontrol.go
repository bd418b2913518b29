// Package accesscontrol implements the declarative, ownership-qualified verb
// style of authorization: a fixed table maps each role to (action, qualifier,
// resource) capabilities with qualifier "own" or "any", and roles may extend
// other roles. It needs no backing store and is resolved once at build time.
//
// The database backed role/permission graph in package rbac is the
// authoritative engine; this variant is kept for the call sites that still
// speak the verb style. Consumers pick one style explicitly per guard.
package accesscontrol

import (
	"errors"
	"fmt"
)

// Action is one of the four verbs the engine understands.
type Action string

const (
	// ActionCreate creates a new resource instance.
	ActionCreate Action = "create"
	// ActionRead reads resource instances.
	ActionRead Action = "read"
	// ActionUpdate updates resource instances.
	ActionUpdate Action = "update"
	// ActionDelete deletes resource instances.
	ActionDelete Action = "delete"
)

// Qualifier scopes a capability to the subject's own instances or to any instance.
type Qualifier string

const (
	// QualifierOwn limits the capability to instances the subject owns.
	QualifierOwn Qualifier = "own"
	// QualifierAny extends the capability to every instance.
	QualifierAny Qualifier = "any"
)

var (
	// ErrUnknownAction is returned when a check uses an action the engine has
	// no table entry for. This is a programming error at the call site and
	// must never be treated as an allow.
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnknownRole is returned at build time when a role extends a role
	// that was never granted.
	ErrUnknownRole = errors.New("extended role is not defined")

	// ErrExtendCycle is returned at build time when role extensions form a
	// cycle.
	ErrExtendCycle = errors.New("role extension cycle")
)

// capability is the lookup key of the grant table. A finite key instead of a
// method name built from strings, so a typo fails the build, not the check.
type capability struct {
	action    Action
	qualifier Qualifier
	resource  string
}

// Grant collects the declared capabilities of a single role. Methods chain.
type Grant struct {
	role    string
	extends []string
	caps    map[capability]struct{}
}

func (g *Grant) add(action Action, qualifier Qualifier, resource string) *Grant {
	g.caps[capability{action: action, qualifier: qualifier, resource: resource}] = struct{}{}
	return g
}

// CreateOwn grants creating own instances of resource.
func (g *Grant) CreateOwn(resource string) *Grant { return g.add(ActionCreate, QualifierOwn, resource) }

// CreateAny grants creating any instance of resource.
func (g *Grant) CreateAny(resource string) *Grant { return g.add(ActionCreate, QualifierAny, resource) }

// ReadOwn grants reading own instances of resource.
func (g *Grant) ReadOwn(resource string) *Grant { return g.add(ActionRead, QualifierOwn, resource) }

// ReadAny grants reading any instance of resource.
func (g *Grant) ReadAny(resource string) *Grant { return g.add(ActionRead, QualifierAny, resource) }

// UpdateOwn grants updating own instances of resource.
func (g *Grant) UpdateOwn(resource string) *Grant { return g.add(ActionUpdate, QualifierOwn, resource) }

// UpdateAny grants updating any instance of resource.
func (g *Grant) UpdateAny(resource string) *Grant { return g.add(ActionUpdate, QualifierAny, resource) }

// DeleteOwn grants deleting own instances of resource.
func (g *Grant) DeleteOwn(resource string) *Grant { return g.add(ActionDelete, QualifierOwn, resource) }

// DeleteAny grants deleting any instance of resource.
func (g *Grant) DeleteAny(resource string) *Grant { return g.add(ActionDelete, QualifierAny, resource) }

// Extend inherits every capability of another role, resolved transitively at
// build time. Cyclic extension is a configuration error.
func (g *Grant) Extend(role string) *Grant {
	g.extends = append(g.extends, role)
	return g
}

// AccessControl is the built capability table. Safe for concurrent reads
// after Build; checks are pure lookups with no state.
type AccessControl struct {
	grants map[string]*Grant
	table  map[string]map[capability]struct{}
	built  bool
}

// New creates an empty AccessControl. Declare roles with Grant, then call
// Build before checking.
func New() *AccessControl {
	return &AccessControl{
		grants: make(map[string]*Grant),
		table:  make(map[string]map[capability]struct{}),
	}
}

// Grant declares (or extends the declaration of) a role.
func (ac *AccessControl) Grant(role string) *Grant {
	if g, ok := ac.grants[role]; ok {
		return g
	}

	g := &Grant{role: role, caps: make(map[capability]struct{})}
	ac.grants[role] = g

	return g
}

// Build resolves role extensions transitively and freezes the table.
func (ac *AccessControl) Build() error {
	for role := range ac.grants {
		resolved := make(map[capability]struct{})

		if err := ac.resolve(role, resolved, map[string]bool{}); err != nil {
			return err
		}

		ac.table[role] = resolved
	}

	ac.built = true

	return nil
}

func (ac *AccessControl) resolve(role string, into map[capability]struct{}, visiting map[string]bool) error {
	if visiting[role] {
		return fmt.Errorf("%w: %q", ErrExtendCycle, role)
	}

	g, ok := ac.grants[role]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	visiting[role] = true
	defer delete(visiting, role)

	for _, parent := range g.extends {
		if err := ac.resolve(parent, into, visiting); err != nil {
			return err
		}
	}

	for c := range g.caps {
		into[c] = struct{}{}
	}

	return nil
}

func (ac *AccessControl) has(role string, action Action, qualifier Qualifier, resource string) bool {
	caps, ok := ac.table[role]
	if !ok {
		// Unknown role: deny, not an error. The caller's role tag may simply
		// not participate in this engine.
		return false
	}

	_, granted := caps[capability{action: action, qualifier: qualifier, resource: resource}]

	return granted
}

func validAction(action Action) bool {
	switch action {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return true
	}

	return false
}

// Can checks whether role may perform action on resource, probing the "own"
// capability first and falling back to "any". An action outside the table
// fails with ErrUnknownAction instead of allowing.
func (ac *AccessControl) Can(role string, action Action, resource string) (bool, error) {
	if !validAction(action) {
		return false, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if ac.has(role, action, QualifierOwn, resource) {
		return true, nil
	}

	return ac.has(role, action, QualifierAny, resource), nil
}

// CanAny checks only the "any" qualified capability.
func (ac *AccessControl) CanAny(role string, action Action, resource string) (bool, error) {
	if !validAction(action) {
		return false, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	return ac.has(role, action, QualifierAny, resource), nil
}

// CanActOn decides the ownership override for a concrete resource instance:
// a role with the "any" capability acts on every instance, a role with only
// the "own" capability must own the instance, everything else is denied.
func (ac *AccessControl) CanActOn(
	role string,
	action Action,
	resource string,
	ownerID, subjectID uint64,
) (bool, error) {
	anyOK, err := ac.CanAny(role, action, resource)
	if err != nil {
		return false, err
	}

	if anyOK {
		return true, nil
	}

	if !ac.has(role, action, QualifierOwn, resource) {
		return false, nil
	}

	return ownerID == subjectID, nil
}

// DefaultGrants builds the historic capability table for the food ordering
// roles: customers act on their own orders and cart and read every menu,
// merchants extend customers and additionally manage their own menus and
// read/update any order.
func DefaultGrants() (*AccessControl, error) {
	ac := New()

	ac.Grant("customer").
		ReadOwn("order").
		CreateOwn("order").
		ReadOwn("cart").
		CreateOwn("cart").
		UpdateOwn("cart").
		DeleteOwn("cart").
		ReadAny("menu")

	ac.Grant("merchant").
		Extend("customer").
		ReadAny("order").
		UpdateAny("order").
		CreateOwn("menu").
		ReadOwn("menu").
		UpdateOwn("menu").
		DeleteOwn("menu")

	if err := ac.Build(); err != nil {
		return nil, err
	}

	return ac, nil
}
