// Package web provides the foodapp HTTP service: a JSON API served by fiber
// with JWT authentication and permission-guarded routes.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/inii-man/foodapp/internal/auth"
	"github.com/inii-man/foodapp/internal/config"
	fiberlogger "github.com/inii-man/foodapp/internal/logger/adapter/fiber"
	"github.com/inii-man/foodapp/internal/rbac"
	authhandler "github.com/inii-man/foodapp/internal/web/handler/auth"
	"github.com/inii-man/foodapp/internal/web/handler/cart"
	"github.com/inii-man/foodapp/internal/web/handler/menu"
	"github.com/inii-man/foodapp/internal/web/handler/order"
	"github.com/inii-man/foodapp/internal/web/handler/rbacadmin"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of foodapp.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	// Wait interrupt or shutdown request through /shutdown
	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "foodapp",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	accessLog := fiberlogger.Config{Config: cfg.Log}
	if cfg.Log.DisableCheckAlive {
		accessLog.CheckAliveURI = "/checkalive"
	}

	app.Use(fiberlogger.New(accessLog))

	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}

	app.Get("/checkalive", func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	rbacService := rbac.NewService(db)
	users := auth.NewService(db)
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	guard := auth.NewGuard(tokens, users, rbacService)

	// init handlers (they register their own routes with permission checks)
	authhandler.Handler.Init(app, cfg, db, guard, rbacService)
	menu.Handler.Init(app, cfg, db, guard, rbacService)
	order.Handler.Init(app, cfg, db, guard, rbacService)
	cart.Handler.Init(app, cfg, db, guard, rbacService)
	rbacadmin.Handler.Init(app, cfg, db, guard, rbacService)

	service.alive.Store(true)

	return service
}
