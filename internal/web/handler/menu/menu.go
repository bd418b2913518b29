// Package menu provides the menu catalog endpoints. Reads are public, writes
// require the menu permissions and pass the ownership override so a merchant
// only edits their own dishes while menu.view.all holders edit any.
package menu

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/inii-man/foodapp/internal/auth"
	"github.com/inii-man/foodapp/internal/config"
	"github.com/inii-man/foodapp/internal/db/models"
	"github.com/inii-man/foodapp/internal/rbac"
	"github.com/inii-man/foodapp/internal/web/handler"
)

// Path is the base path for menu endpoints.
const Path = handler.RootPath + "menus"

// Service provides the menu endpoints.
type Service struct {
	db   *gorm.DB
	rbac *rbac.Service
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
	s.rbac = rbacService

	app.Get(Path, s.List)
	app.Get(Path+"/:id", s.GetByID)
	app.Post(Path, guard.Authenticate, guard.RequirePermission(auth.PermMenuCreate), s.Create)
	app.Put(Path+"/:id", guard.Authenticate, guard.RequirePermission(auth.PermMenuUpdate), s.Update)
	app.Delete(Path+"/:id", guard.Authenticate, guard.RequirePermission(auth.PermMenuDelete), s.Delete)
}

type menuInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description" validate:"max=1000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Image       string  `json:"image" validate:"omitempty,url"`
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}

// List returns every menu with its merchant. Public.
func (s *Service) List(c *fiber.Ctx) error {
	var menus []models.Menu

	if err := s.db.Preload("Merchant").Find(&menus).Error; err != nil {
		log.Error().Err(err).Msg("failed to list menus")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load menus"})
	}

	return c.JSON(menus)
}

// GetByID returns a single menu. Public.
func (s *Service) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid menu ID"})
	}

	var menu models.Menu

	err = s.db.Preload("Merchant").First(&menu, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Menu not found"})
		}

		log.Error().Err(err).Uint64("menu_id", id).Msg("failed to load menu")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load menu"})
	}

	return c.JSON(menu)
}

// Create adds a menu owned by the authenticated merchant.
func (s *Service) Create(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)

	var input menuInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if errs := handler.Validate(input); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errs,
		})
	}

	menu := models.Menu{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		MerchantID:  user.ID,
	}

	if err := s.db.Create(&menu).Error; err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to create menu")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create menu"})
	}

	return c.Status(fiber.StatusCreated).JSON(menu)
}

// loadOwned fetches the menu and applies the ownership override: holders of
// menu.view.all act on any menu, everyone else only on their own.
func (s *Service) loadOwned(c *fiber.Ctx, user *models.User) (*models.Menu, error) {
	id, err := parseID(c)
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid menu ID"})
	}

	var menu models.Menu

	err = s.db.First(&menu, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Menu not found"})
		}

		log.Error().Err(err).Uint64("menu_id", id).Msg("failed to load menu")

		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load menu"})
	}

	allowed, err := s.rbac.CanActOn(user.ID, menu.MerchantID, auth.PermMenuViewAll)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("ownership check failed")

		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Permission check failed"})
	}

	if !allowed {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden: you can only modify your own menus",
		})
	}

	return &menu, nil
}

// Update modifies a menu, subject to the ownership override.
func (s *Service) Update(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)

	menu, err := s.loadOwned(c, user)
	if menu == nil {
		return err
	}

	var input menuInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if errs := handler.Validate(input); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errs,
		})
	}

	menu.Name = input.Name
	menu.Description = input.Description
	menu.Price = input.Price
	menu.Image = input.Image

	if err := s.db.Save(menu).Error; err != nil {
		log.Error().Err(err).Uint64("menu_id", menu.ID).Msg("failed to update menu")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update menu"})
	}

	return c.JSON(menu)
}

// Delete removes a menu, subject to the ownership override.
func (s *Service) Delete(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)

	menu, err := s.loadOwned(c, user)
	if menu == nil {
		return err
	}

	if err := s.db.Delete(menu).Error; err != nil {
		log.Error().Err(err).Uint64("menu_id", menu.ID).Msg("failed to delete menu")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete menu"})
	}

	return c.JSON(fiber.Map{"message": "Menu deleted successfully"})
}
