// Package order provides the order endpoints. Listing is scoped by
// order.view.all (staff see everything, customers their own), single reads
// pass the ownership override and status updates are a merchant capability.
package order

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

// Path is the base path for order endpoints.
const Path = handler.RootPath + "orders"

// Service provides the order endpoints.
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

	app.Get(Path, guard.Authenticate, guard.RequirePermission(auth.PermOrderView), s.List)
	app.Get(Path+"/:id", guard.Authenticate, guard.RequirePermission(auth.PermOrderView), s.GetByID)
	app.Post(Path, guard.Authenticate, guard.RequirePermission(auth.PermOrderCreate), s.Create)
	app.Put(Path+"/:id/status", guard.Authenticate,
		guard.RequirePermission(auth.PermOrderUpdateStatus), s.UpdateStatus)
}

type orderItemInput struct {
	MenuID   uint64 `json:"menuId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type createOrderInput struct {
	Items []orderItemInput `json:"items" validate:"required,min=1,dive"`
}

type updateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// List returns every order for holders of order.view.all, otherwise only the
// caller's own orders.
func (s *Service) List(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)

	viewAll, err := s.rbac.HasPermission(user.ID, auth.PermOrderViewAll)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to check order scope")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Permission check failed"})
	}

	query := s.db.Preload("Items.Menu")
	if !viewAll {
		query = query.Where("customer_id = ?", user.ID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to list orders")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load orders"})
	}

	return c.JSON(orders)
}

// GetByID returns a single order, subject to the ownership override.
func (s *Service) GetByID(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid order ID"})
	}

	var order models.Order

	err = s.db.Preload("Items.Menu").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
		}

		log.Error().Err(err).Uint64("order_id", id).Msg("failed to load order")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load order"})
	}

	allowed, err := s.rbac.CanActOn(user.ID, order.CustomerID, auth.PermOrderViewAll)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("ownership check failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Permission check failed"})
	}

	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden: you can only view your own orders",
		})
	}

	return c.JSON(order)
}

// Create places an order for the authenticated customer. Unit prices are
// copied from the menus at order time and the total is computed server side.
func (s *Service) Create(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)

	var input createOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if errs := handler.Validate(input); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errs,
		})
	}

	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var (
			total float64
			items []models.OrderItem
		)

		for _, item := range input.Items {
			var menu models.Menu

			if err := tx.First(&menu, item.MenuID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound,
						"Menu with ID "+strconv.FormatUint(item.MenuID, 10)+" not found")
				}

				return err
			}

			total += menu.Price * float64(item.Quantity)
			items = append(items, models.OrderItem{
				MenuID:   menu.ID,
				Quantity: item.Quantity,
				Price:    menu.Price,
			})
		}

		order = models.Order{
			CustomerID: user.ID,
			Status:     models.OrderStatusPending,
			TotalPrice: total,
			Items:      items,
		}

		return tx.Create(&order).Error
	})
	if err != nil {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		log.Error().Err(err).Uint64("user_id", user.ID).Msg("failed to create order")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create order"})
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// UpdateStatus moves an order to a new fulfillment state.
func (s *Service) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid order ID"})
	}

	var input updateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	status := models.OrderStatus(input.Status)
	if !models.ValidOrderStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid status, must be one of: pending, preparing, ready, delivered, cancelled",
		})
	}

	var order models.Order

	err = s.db.First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
		}

		log.Error().Err(err).Uint64("order_id", id).Msg("failed to load order")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load order"})
	}

	order.Status = status

	if err := s.db.Save(&order).Error; err != nil {
		log.Error().Err(err).Uint64("order_id", id).Msg("failed to update order status")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update order"})
	}

	return c.JSON(order)
}
