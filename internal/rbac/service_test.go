package rbac

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/inii-man/foodapp/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.ModelHasRole{},
		&models.ModelHasPermission{},
		&models.RoleHasPermission{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedGraph builds a small graph: roles with permission sets and a user.
func seedGraph(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := models.User{Name: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	perms := map[string]*models.Permission{}
	for _, name := range []string{"menu.view", "order.view", "order.create", "order.view.all"} {
		p := models.Permission{Name: name}
		require.NoError(t, db.Create(&p).Error)
		perms[name] = &p
	}

	customer := models.Role{Name: "customer"}
	require.NoError(t, db.Create(&customer).Error)

	for _, name := range []string{"menu.view", "order.view", "order.create"} {
		require.NoError(t, db.Create(&models.RoleHasPermission{
			RoleID:       customer.ID,
			PermissionID: perms[name].ID,
		}).Error)
	}

	staff := models.Role{Name: "staff"}
	require.NoError(t, db.Create(&staff).Error)
	require.NoError(t, db.Create(&models.RoleHasPermission{
		RoleID:       staff.ID,
		PermissionID: perms["order.view.all"].ID,
	}).Error)

	return &user
}

func TestEmptySubjectResolvesEmpty(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)

	user := seedGraph(t, db)

	perms, err := service.EffectivePermissions(user.ID)
	require.NoError(t, err)
	assert.Empty(t, perms, "user without roles or grants must resolve to an empty set")

	roles, err := service.EffectiveRoles(user.ID)
	require.NoError(t, err)
	assert.Empty(t, roles)

	has, err := service.HasPermission(user.ID, "menu.view")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestHasRole(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	user := seedGraph(t, db)

	require.NoError(t, service.AssignRole(user.ID, "customer"))

	has, err := service.HasRole(user.ID, "customer")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = service.HasRole(user.ID, "staff")
	require.NoError(t, err)
	assert.False(t, has)

	has, err = service.HasAnyRole(user.ID, "staff", "customer")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = service.HasAllRoles(user.ID, "staff", "customer")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestHasPermissionViaRoleAndDirect(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	user := seedGraph(t, db)

	require.NoError(t, service.AssignRole(user.ID, "customer"))

	has, err := service.HasPermission(user.ID, "menu.view")
	require.NoError(t, err)
	assert.True(t, has, "permission must flow through the role")

	has, err = service.HasPermission(user.ID, "order.view.all")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, service.GivePermission(user.ID, "order.view.all"))

	has, err = service.HasPermission(user.ID, "order.view.all")
	require.NoError(t, err)
	assert.True(t, has, "direct grant must be honored")
}

func TestHasAnyAndAllPermissions(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	user := seedGraph(t, db)

	require.NoError(t, service.AssignRole(user.ID, "customer"))

	has, err := service.HasAnyPermission(user.ID, []string{"order.view.all", "menu.view"})
	require.NoError(t, err)
	assert.True(t, has)

	has, err = service.HasAnyPermission(user.ID, []string{})
	require.NoError(t, err)
	assert.False(t, has, "empty any-list must deny")

	has, err = service.HasAllPermissions(user.ID, []string{"menu.view", "order.view"})
	require.NoError(t, err)
	assert.True(t, has)

	has, err = service.HasAllPermissions(user.ID, []string{"menu.view", "order.view.all"})
	require.NoError(t, err)
	assert.False(t, has)

	has, err = service.HasAllPermissions(user.ID, []string{})
	require.NoError(t, err)
	assert.True(t, has, "empty all-list is vacuously true")
}

func TestEffectivePermissionsDeduplicates(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	user := seedGraph(t, db)

	require.NoError(t, service.AssignRole(user.ID, "customer"))
	// grant directly a permission the role already carries
	require.NoError(t, service.GivePermission(user.ID, "menu.view"))
	require.NoError(t, service.GivePermission(user.ID, "order.view.all"))

	perms, err := service.EffectivePermissions(user.ID)
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{"menu.view", "order.view", "order.create", "order.view.all"},
		perms,
		"union must be deduplicated",
	)
}

func TestCanActOn(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	user := seedGraph(t, db)

	require.NoError(t, service.AssignRole(user.ID, "customer"))

	// owner acts on their own resource
	allowed, err := service.CanActOn(user.ID, user.ID, "order.view.all")
	require.NoError(t, err)
	assert.True(t, allowed)

	// non-owner without the any-scoped permission is denied
	allowed, err = service.CanActOn(user.ID, user.ID+1, "order.view.all")
	require.NoError(t, err)
	assert.False(t, allowed)

	// the any-scoped permission overrides ownership
	require.NoError(t, service.AssignRole(user.ID, "staff"))

	allowed, err = service.CanActOn(user.ID, user.ID+1, "order.view.all")
	require.NoError(t, err)
	assert.True(t, allowed)
}
