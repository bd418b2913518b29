package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/inii-man/foodapp/internal/auth"
	"github.com/inii-man/foodapp/internal/config"
	"github.com/inii-man/foodapp/internal/rbac"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB, guard *auth.Guard, rbacService *rbac.Service)
}
