// Package cart provides the per-user shopping cart endpoints. The cart is a
// database table keyed (user_id, menu_id), so every operation is naturally
// scoped to the authenticated user and no cross-user access path exists.
package cart

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inii-man/foodapp/internal/auth"
	"github.com/inii-man/foodapp/internal/config"
	"github.com/inii-man/foodapp/internal/db/models"
	"github.com/inii-man/foodapp/internal/rbac"
	"github.com/inii-man/foodapp/internal/web/handler"
)

// Path is the base path for cart endpoints.
const Path = handler.RootPath + "cart"

// Service provides the cart endpoints.
type Service struct {
	db *gorm.DB
}

// Handler is the exported instance.
var Handler = Service{} //nolint:gochecknoglobals

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, guard *auth.Guard, rbacService *rbac.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db

	app.Get(Path, guard.Authenticate, guard.RequirePermission(auth.PermCartView), s.Get)
	app.Post(Path+"/add", guard.Authenticate, guard.RequirePermission(auth.PermCartAdd), s.Add)
	app.Put(Path+"/update", guard.Authenticate, guard.RequirePermission(auth.PermCartUpdate), s.Update)
	app.Delete(Path+"/remove/:menuId", guard.Authenticate,
		guard.RequirePermission(auth.PermCartDelete), s.Remove)
	app.Delete(Path+"/clear", guard.Authenticate, guard.RequirePermission(auth.PermCartDelete), s.Clear)
}

type cartInput struct {
	MenuID   uint64 `json:"menuId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// Get returns the caller's cart with menu details and the running total.
func (s *Service) Get(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)

	var items []models.CartItem

	err := s.db.Preload("Menu").Where("user_id = ?", user.ID).Find(&items).Error
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to load cart")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load cart"})
	}

	var total float64
	for _, item := range items {
		total += item.Menu.Price * float64(item.Quantity)
	}

	return c.JSON(fiber.Map{
		"items": items,
		"total": total,
	})
}

// Add puts a menu item in the cart. Adding an item that is already present
// increments its quantity instead of duplicating the row.
func (s *Service) Add(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)

	var input cartInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if errs := handler.Validate(input); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errs,
		})
	}

	var menu models.Menu
	if err := s.db.First(&menu, input.MenuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Menu not found"})
		}

		log.Error().Err(err).Uint64("menu_id", input.MenuID).Msg("failed to load menu")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to add to cart"})
	}

	item := models.CartItem{
		UserID:   user.ID,
		MenuID:   input.MenuID,
		Quantity: input.Quantity,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "menu_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("quantity + ?", input.Quantity)}),
	}).Create(&item).Error
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to add to cart")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to add to cart"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Item added to cart"})
}

// Update replaces the quantity of an item already in the cart.
func (s *Service) Update(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)

	var input cartInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if errs := handler.Validate(input); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errs,
		})
	}

	result := s.db.Model(&models.CartItem{}).
		Where("user_id = ? AND menu_id = ?", user.ID, input.MenuID).
		Update("quantity", input.Quantity)
	if result.Error != nil {
		log.Error().Err(result.Error).Uint64("user_id", user.ID).Msg("failed to update cart")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update cart"})
	}

	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Item not in cart"})
	}

	return c.JSON(fiber.Map{"message": "Cart updated"})
}

// Remove deletes a single item from the cart.
func (s *Service) Remove(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)

	menuID, err := strconv.ParseUint(c.Params("menuId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid menu ID"})
	}

	result := s.db.Where("user_id = ? AND menu_id = ?", user.ID, menuID).Delete(&models.CartItem{})
	if result.Error != nil {
		log.Error().Err(result.Error).Uint64("user_id", user.ID).Msg("failed to remove from cart")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to remove from cart"})
	}

	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Item not in cart"})
	}

	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}

// Clear empties the caller's cart.
func (s *Service) Clear(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)

	err := s.db.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to clear cart")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to clear cart"})
	}

	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
