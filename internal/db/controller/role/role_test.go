package role

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
		&models.Role{},
		&models.Permission{},
		&models.RoleHasPermission{},
		&models.ModelHasRole{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedPermissions(t *testing.T, db *gorm.DB, names ...string) {
	t.Helper()

	for _, name := range names {
		require.NoError(t, db.Create(&models.Permission{Name: name}).Error)
	}
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Role{Name: "customer"}).Error)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		roleName      string
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			roleName:      "customer",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty name",
			dbParam:       db,
			roleName:      "",
			expectedError: ErrRoleNameEmpty,
		},
		{
			name:          "missing role",
			dbParam:       db,
			roleName:      "nope",
			expectedError: ErrRoleNotFound,
		},
		{
			name:     "existing role",
			dbParam:  db,
			roleName: "customer",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			role, err := Get(tc.dbParam, tc.roleName)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, role)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.roleName, role.Name)
		})
	}
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	role, err := Create(db, "merchant")
	require.NoError(t, err)
	assert.Equal(t, "merchant", role.Name)
	assert.NotZero(t, role.ID)

	_, err = Create(db, "merchant")
	assert.ErrorIs(t, err, ErrRoleAlreadyExists)
}

func TestFindOrCreate(t *testing.T) {
	db := setupTestDB(t)

	first, err := FindOrCreate(db, "admin")
	require.NoError(t, err)

	second, err := FindOrCreate(db, "admin")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "find-or-create must not duplicate")

	var count int64
	require.NoError(t, db.Model(&models.Role{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSetPermissions(t *testing.T) {
	db := setupTestDB(t)
	seedPermissions(t, db, "menu.view", "menu.create", "order.view")

	role, err := Create(db, "merchant")
	require.NoError(t, err)

	err = SetPermissions(db, role.ID, []string{"menu.view", "menu.create"})
	require.NoError(t, err)

	perms, err := Permissions(db, role.ID)
	require.NoError(t, err)
	assert.Len(t, perms, 2)

	// replace-set semantics: the old set is gone, not merged
	err = SetPermissions(db, role.ID, []string{"order.view"})
	require.NoError(t, err)

	perms, err = Permissions(db, role.ID)
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.Equal(t, "order.view", perms[0].Name)
}

func TestSetPermissionsUnknownNameFailsWhole(t *testing.T) {
	db := setupTestDB(t)
	seedPermissions(t, db, "menu.view")

	role, err := Create(db, "customer")
	require.NoError(t, err)
	require.NoError(t, SetPermissions(db, role.ID, []string{"menu.view"}))

	err = SetPermissions(db, role.ID, []string{"menu.view", "does.not.exist"})
	assert.ErrorIs(t, err, ErrPermissionNotFound)

	// the failed call must leave the previous set untouched
	perms, err := Permissions(db, role.ID)
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.Equal(t, "menu.view", perms[0].Name)
}

func TestDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	seedPermissions(t, db, "menu.view")

	role, err := Create(db, "customer")
	require.NoError(t, err)
	require.NoError(t, SetPermissions(db, role.ID, []string{"menu.view"}))

	require.NoError(t, db.Create(&models.ModelHasRole{
		RoleID:    role.ID,
		ModelID:   1,
		ModelType: models.PrincipalUser,
	}).Error)

	require.NoError(t, Delete(db, role.ID))

	var joins int64
	require.NoError(t, db.Model(&models.RoleHasPermission{}).Count(&joins).Error)
	assert.EqualValues(t, 0, joins, "role deletion must remove permission links")

	require.NoError(t, db.Model(&models.ModelHasRole{}).Count(&joins).Error)
	assert.EqualValues(t, 0, joins, "role deletion must remove user assignments")

	_, err = GetByID(db, role.ID)
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestGetAll(t *testing.T) {
	db := setupTestDB(t)

	roles, err := GetAll(db)
	require.NoError(t, err)
	assert.Empty(t, roles)

	_, err = Create(db, "customer")
	require.NoError(t, err)
	_, err = Create(db, "merchant")
	require.NoError(t, err)

	roles, err = GetAll(db)
	require.NoError(t, err)
	assert.Len(t, roles, 2)
}
