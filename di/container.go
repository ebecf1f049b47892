package di

import (
	"context"
	"fmt"

	"github.com/gorilla/mux"

	"tour-server/api"
	"tour-server/api/tourapi"
	"tour-server/config"
	"tour-server/dao/postgres"
	"tour-server/dao/redis"
	"tour-server/db"
	"tour-server/logger"
	"tour-server/server"
	"tour-server/server/handlers"
	services "tour-server/service"
)

// Container holds all application dependencies.
type Container struct {
	Config                *config.Config
	RedisClient           db.RedisClient
	PostgresClient        *db.PostgresClient
	RedisTourDao          *redis.RedisTourDAO
	TourAPI               tourapi.TourAPI
	TourListService       *services.TourListService
	PlaceService          *services.PlaceService
	StatsService          *services.StatsService
	UserSyncService       *services.UserSyncService
	BookmarkService       *services.BookmarkService
	StatsRefresherService *services.StatsRefresherService
	MuxRouter             *mux.Router
	Router                *server.Router
	TourHttpServer        *server.TourHttpServer

	closers []func() error
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, log logger.Logger) (*Container, error) {
	log = logger.Component(log, "Container")
	log.Info("initializing container", map[string]interface{}{"env": cfg.App.Environment})

	c := &Container{Config: cfg}

	// Redis is optional; without it caches live in process memory.
	if cfg.Database.Redis.Enabled {
		redisClient, err := db.NewRedisFromConfig(ctx, cfg.Database.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.RedisClient = redisClient
		c.closers = append(c.closers, redisClient.Close)
	} else {
		log.Warn("redis disabled, using in-memory cache", nil)
		c.RedisClient = db.NewMockRedisClient()
	}
	c.RedisTourDao = redis.NewRedisTourDAO(c.RedisClient)

	if cfg.TourAPI.UseMock {
		log.Info("using mock tour api", nil)
		c.TourAPI = tourapi.NewTourApiClientMock()
	} else {
		log.Info("using prod tour api", map[string]interface{}{"base_url": cfg.TourAPI.BaseURL})
		httpClient := api.NewHTTPClient(cfg.TourAPI.BaseURL, cfg.TourAPI.Timeout)
		c.TourAPI = tourapi.NewTourApiClient(httpClient, tourapi.Options{
			ServiceKey:         cfg.TourAPI.ServiceKey,
			MobileApp:          cfg.TourAPI.MobileApp,
			MaxRetries:         cfg.TourAPI.MaxRetries,
			RetryBackoff:       cfg.TourAPI.RetryBackoff,
			BreakerMaxFailures: cfg.TourAPI.BreakerMaxFailures,
			BreakerOpenTimeout: cfg.TourAPI.BreakerOpenTimeout,
		}, log)
	}

	c.TourListService = services.NewTourListService(c.TourAPI, c.RedisTourDao, services.TourListOptions{
		PageTTL:        cfg.Cache.PageTTL,
		PetInfoTTL:     cfg.Cache.PetInfoTTL,
		PetConcurrency: cfg.TourAPI.PetLookupConcurrency,
	}, log)
	c.PlaceService = services.NewPlaceService(c.TourAPI, log)
	c.StatsService = services.NewStatsService(c.TourAPI, c.RedisTourDao, cfg.Cache.StatsTTL, log)
	c.StatsRefresherService = services.NewStatsRefresherService(c.StatsService, log)

	classifier := handlers.NewErrorClassifier(cfg.IsDevelopment(), log)
	pingDeps := map[string]handlers.Pinger{"redis": c.RedisClient}

	h := server.Handlers{
		Tours:  handlers.NewTourHandler(c.TourListService, classifier, log),
		Places: handlers.NewPlaceHandler(c.PlaceService, classifier, log),
		Stats:  handlers.NewStatsHandler(c.StatsService, classifier, log),
	}

	// Users and bookmarks need Postgres; their routes are skipped without it.
	if cfg.Database.Postgres.Enabled {
		pg, err := db.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		c.closers = append(c.closers, pg.Close)
		if err := pg.Ping(ctx); err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pg); err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
		c.PostgresClient = pg
		pingDeps["postgres"] = pg

		c.UserSyncService = services.NewUserSyncService(postgres.NewUserDAO(pg), log)
		c.BookmarkService = services.NewBookmarkService(postgres.NewBookmarkDAO(pg), c.TourAPI, log)
		h.Users = handlers.NewUserHandler(c.UserSyncService, classifier, log)
		h.Bookmarks = handlers.NewBookmarkHandler(c.BookmarkService, c.UserSyncService, classifier, log)
	} else {
		log.Warn("postgres disabled, bookmarks unavailable", nil)
	}
	h.Ping = handlers.NewPingHandler(pingDeps)

	c.MuxRouter = mux.NewRouter()
	c.Router = server.NewRouter(h, c.MuxRouter, cfg.Server, log)
	c.TourHttpServer = server.NewTourHttpServer(c.Router, c.MuxRouter, cfg.Server, log)

	return c, nil
}

// Close releases every connection opened by NewContainer.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		_ = c.closers[i]()
	}
	c.closers = nil
}
