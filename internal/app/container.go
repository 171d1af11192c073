package app

import (
	"context"
	"log"
	"time"

	"skill-matrix/internal/config"
	"skill-matrix/internal/database"
	dbpostgres "skill-matrix/internal/database/postgres"
	"skill-matrix/internal/infrastructure/cache"
	"skill-matrix/internal/notification"
	"skill-matrix/internal/ws"
)

type Container struct {
	Config   config.Config
	DB       database.DB
	Cache    *cache.Redis
	Hub      *ws.Hub
	Notifier notification.Notifier
	Logger   *log.Logger
}

func NewContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger := log.Default()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redisCache := cache.NewRedis(logger)

	hub := ws.NewHub(logger)
	ws.SetDefaultHub(hub)

	notifier := notification.Multi{
		notification.NewLogNotifier(logger),
		ws.Sink{},
	}

	return &Container{
		Config:   cfg,
		DB:       db,
		Cache:    redisCache,
		Hub:      hub,
		Notifier: notifier,
		Logger:   logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
