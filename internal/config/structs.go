package config

import (
	"time"

	"github.com/inii-man/foodapp/internal/logger"
)

// Auth holds authentication and bootstrap settings.
type Auth struct {
	// JWTSecret signs API bearer tokens (HS256).
	JWTSecret string
	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration
	// SuperAdminName, SuperAdminEmail and SuperAdminPassword describe the
	// super administrator account ensured by the seeding step.
	SuperAdminName     string
	SuperAdminEmail    string
	SuperAdminPassword string
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Auth      Auth
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}
