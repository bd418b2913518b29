package accesscontrol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGrants(t *testing.T) {
	ac, err := DefaultGrants()
	require.NoError(t, err)

	testCases := []struct {
		name     string
		role     string
		action   Action
		resource string
		allowed  bool
	}{
		{"customer reads own order", "customer", ActionRead, "order", true},
		{"customer creates own order", "customer", ActionCreate, "order", true},
		{"customer reads menu", "customer", ActionRead, "menu", true},
		{"customer cannot create menu", "customer", ActionCreate, "menu", false},
		{"customer cannot delete order", "customer", ActionDelete, "order", false},
		{"merchant creates menu", "merchant", ActionCreate, "menu", true},
		{"merchant updates order", "merchant", ActionUpdate, "order", true},
		{"merchant inherits customer cart read", "merchant", ActionRead, "cart", true},
		{"merchant inherits customer order create", "merchant", ActionCreate, "order", true},
		{"unknown role is denied", "ghost", ActionRead, "menu", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := ac.Can(tc.role, tc.action, tc.resource)
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestUnknownActionErrors(t *testing.T) {
	ac, err := DefaultGrants()
	require.NoError(t, err)

	allowed, err := ac.Can("customer", Action("approve"), "order")
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.False(t, allowed, "an unknown action must never allow")

	_, err = ac.CanAny("customer", Action("approve"), "order")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestCanAny(t *testing.T) {
	ac, err := DefaultGrants()
	require.NoError(t, err)

	// customer's order capabilities are own-scoped only
	allowed, err := ac.CanAny("customer", ActionRead, "order")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = ac.CanAny("merchant", ActionRead, "order")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCanActOn(t *testing.T) {
	ac, err := DefaultGrants()
	require.NoError(t, err)

	// own-scoped: owner yes, stranger no
	allowed, err := ac.CanActOn("customer", ActionRead, "order", 7, 7)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = ac.CanActOn("customer", ActionRead, "order", 7, 8)
	require.NoError(t, err)
	assert.False(t, allowed)

	// any-scoped capability overrides ownership
	allowed, err = ac.CanActOn("merchant", ActionRead, "order", 7, 8)
	require.NoError(t, err)
	assert.True(t, allowed)

	// no capability at all
	allowed, err = ac.CanActOn("customer", ActionDelete, "order", 7, 7)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestExtendCycleFailsBuild(t *testing.T) {
	ac := New()
	ac.Grant("a").Extend("b")
	ac.Grant("b").Extend("a")

	err := ac.Build()
	assert.ErrorIs(t, err, ErrExtendCycle)
}

func TestExtendUnknownRoleFailsBuild(t *testing.T) {
	ac := New()
	ac.Grant("a").Extend("nope")

	err := ac.Build()
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestTransitiveExtension(t *testing.T) {
	ac := New()
	ac.Grant("base").ReadOwn("thing")
	ac.Grant("mid").Extend("base").UpdateOwn("thing")
	ac.Grant("top").Extend("mid").DeleteAny("thing")
	require.NoError(t, ac.Build())

	for _, action := range []Action{ActionRead, ActionUpdate, ActionDelete} {
		allowed, err := ac.Can("top", action, "thing")
		require.NoError(t, err)
		assert.True(t, allowed, "top must inherit %s through the chain", action)
	}
}
