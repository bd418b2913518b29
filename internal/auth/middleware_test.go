package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/inii-man/foodapp/internal/db/models"
	"github.com/inii-man/foodapp/internal/rbac"
)

func setupGuardApp(t *testing.T) (*fiber.App, *gorm.DB, *TokenIssuer) {
	t.Helper()

	db := setupTestDB(t)

	err := db.AutoMigrate(
		&models.Role{},
		&models.Permission{},
		&models.ModelHasRole{},
		&models.ModelHasPermission{},
		&models.RoleHasPermission{},
	)
	require.NoError(t, err)

	tokens := NewTokenIssuer("test-secret", time.Hour)
	guard := NewGuard(tokens, NewService(db), rbac.NewService(db))

	app := fiber.New()
	app.Get("/protected", guard.Authenticate, guard.RequirePermission("menu.create"),
		func(c *fiber.Ctx) error {
			return c.SendString("ok")
		})
	app.Get("/role-gated", guard.Authenticate, guard.RequireRole("superadmin"),
		func(c *fiber.Ctx) error {
			return c.SendString("ok")
		})

	return app, db, tokens
}

func registerWithPermission(t *testing.T, db *gorm.DB, permission string) *models.User {
	t.Helper()

	user, err := NewService(db).Register("Alice", "alice@example.com", "secret123", RoleCustomer)
	require.NoError(t, err)

	if permission != "" {
		require.NoError(t, db.Create(&models.Permission{Name: permission}).Error)
		require.NoError(t, rbac.NewService(db).GivePermission(user.ID, permission))
	}

	return user
}

func doRequest(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestGuardMissingTokenIs401(t *testing.T) {
	app, _, _ := setupGuardApp(t)

	resp := doRequest(t, app, "/protected", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGuardBadTokenIs401(t *testing.T) {
	app, _, _ := setupGuardApp(t)

	resp := doRequest(t, app, "/protected", "garbage")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGuardTokenForDeletedUserIs401(t *testing.T) {
	app, db, tokens := setupGuardApp(t)
	user := registerWithPermission(t, db, "menu.create")

	token, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)

	resp := doRequest(t, app, "/protected", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGuardLackingPermissionIs403(t *testing.T) {
	app, db, tokens := setupGuardApp(t)
	user := registerWithPermission(t, db, "")

	token, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestGuardWithPermissionPasses(t *testing.T) {
	app, db, tokens := setupGuardApp(t)
	user := registerWithPermission(t, db, "menu.create")

	token, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGuardRoleGate(t *testing.T) {
	app, db, tokens := setupGuardApp(t)
	user := registerWithPermission(t, db, "")

	token, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	resp := doRequest(t, app, "/role-gated", token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	require.NoError(t, db.Create(&models.Role{Name: "superadmin"}).Error)
	require.NoError(t, rbac.NewService(db).AssignRole(user.ID, "superadmin"))

	resp = doRequest(t, app, "/role-gated", token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
