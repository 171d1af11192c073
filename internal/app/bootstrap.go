package app

import (
	"context"
	"fmt"
	"strings"

	"skill-matrix/internal/config"
	"skill-matrix/internal/database/migration"
	"skill-matrix/internal/database/seeder"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/delivery/http/routes"
	"skill-matrix/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := prepareStore(c); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	go c.Hub.Run()

	cleanup := func() error {
		return c.Close()
	}
	return &App{Fiber: f, Container: c}, cleanup, nil
}

// prepareStore applies pending migrations and guarantees the default matrix
// record exists before the server accepts traffic.
func prepareStore(c *Container) error {
	ctx := context.Background()

	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, c.DB.SQLDB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := (seeder.Runner{Seeders: seeder.Default()}).Run(ctx, c.DB); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	registry := routes.NewRegistry(c.DB, c.Cache, c.Notifier, c.Logger, ws.NewHandler(c.Hub, c.Logger))
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
