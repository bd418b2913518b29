package permission

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
		&models.Permission{},
		&models.RoleHasPermission{},
		&models.ModelHasPermission{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Permission{Name: "menu.view"}).Error)

	testCases := []struct {
		name           string
		dbParam        *gorm.DB
		permissionName string
		expectedError  error
	}{
		{
			name:           "nil database",
			dbParam:        nil,
			permissionName: "menu.view",
			expectedError:  ErrDBNil,
		},
		{
			name:           "empty name",
			dbParam:        db,
			permissionName: "",
			expectedError:  ErrPermissionNameEmpty,
		},
		{
			name:           "missing permission",
			dbParam:        db,
			permissionName: "nope",
			expectedError:  ErrPermissionNotFound,
		},
		{
			name:           "existing permission",
			dbParam:        db,
			permissionName: "menu.view",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			perm, err := Get(tc.dbParam, tc.permissionName)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, perm)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.permissionName, perm.Name)
		})
	}
}

func TestCreateDuplicate(t *testing.T) {
	db := setupTestDB(t)

	_, err := Create(db, "order.create")
	require.NoError(t, err)

	_, err = Create(db, "order.create")
	assert.ErrorIs(t, err, ErrPermissionAlreadyExists)
}

func TestFindOrCreateIdempotent(t *testing.T) {
	db := setupTestDB(t)

	first, err := FindOrCreate(db, "cart.add")
	require.NoError(t, err)

	second, err := FindOrCreate(db, "cart.add")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteCascades(t *testing.T) {
	db := setupTestDB(t)

	perm, err := Create(db, "menu.delete")
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.RoleHasPermission{
		RoleID:       1,
		PermissionID: perm.ID,
	}).Error)
	require.NoError(t, db.Create(&models.ModelHasPermission{
		PermissionID: perm.ID,
		ModelID:      1,
		ModelType:    models.PrincipalUser,
	}).Error)

	require.NoError(t, Delete(db, perm.ID))

	var joins int64
	require.NoError(t, db.Model(&models.RoleHasPermission{}).Count(&joins).Error)
	assert.EqualValues(t, 0, joins)

	require.NoError(t, db.Model(&models.ModelHasPermission{}).Count(&joins).Error)
	assert.EqualValues(t, 0, joins)

	_, err = Get(db, "menu.delete")
	assert.ErrorIs(t, err, ErrPermissionNotFound)
}
