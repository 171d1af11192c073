package routes

import (
	"log"

	"skill-matrix/internal/database"
	"skill-matrix/internal/delivery/http/handler"
	v1 "skill-matrix/internal/delivery/http/routes/v1"
	"skill-matrix/internal/notification"
	"skill-matrix/internal/usecase"
	"skill-matrix/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health    *handler.HealthHandler
	db        database.DB
	cache     usecase.MatrixCache
	notifier  notification.Notifier
	logger    *log.Logger
	wsHandler *ws.Handler
}

func NewRegistry(db database.DB, cache usecase.MatrixCache, notifier notification.Notifier, logger *log.Logger, wsHandler *ws.Handler) *Registry {
	return &Registry{
		health:    handler.NewHealthHandler(),
		db:        db,
		cache:     cache,
		notifier:  notifier,
		logger:    logger,
		wsHandler: wsHandler,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	if r.wsHandler != nil {
		app.Get("/ws", r.wsHandler.HandleNotifications)
	}

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), v1.Deps{
		DB:       r.db,
		Cache:    r.cache,
		Notifier: r.notifier,
		Logger:   r.logger,
	})
}
