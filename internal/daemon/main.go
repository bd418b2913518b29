// Package daemon wires the pieces together: it opens the database, migrates
// the schema, seeds the authorization graph and hands off to the web service.
package daemon

import (
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/inii-man/foodapp/internal/config"
	"github.com/inii-man/foodapp/internal/db/dsn"
	"github.com/inii-man/foodapp/internal/db/models"
	"github.com/inii-man/foodapp/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService web.Service
}

// Start starts the Daemon's web service.
func (d *Daemon) Start(addr string) error {
	return d.webService.Start(addr)
}

// WaitShutdown blocks until the web service has shut down.
func (d *Daemon) WaitShutdown() {
	d.webService.WaitShutdown()
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	dbDriver := gormmysql.Open(dsn.Create(cfg)) // open db with gorm mysql driver

	db, err := gorm.Open(dbDriver, &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
		return nil
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.ModelHasRole{},
		&models.ModelHasPermission{},
		&models.RoleHasPermission{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
		&models.CartItem{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
		return nil
	}

	if err = Seed(cfg, db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
		return nil
	}

	return &Daemon{
		webService: *web.New(cfg, db),
	}
}
