package container

import (
	"seized-page/internal/config"
	"seized-page/internal/service"
	"seized-page/pkg/database"
	"seized-page/pkg/logger"
	"seized-page/pkg/redis"
	"seized-page/pkg/utils"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	Connector   *database.PostgresConnector
	RedisClient *redis.Client
	Resolver    *utils.AddressResolver
	Services    *service.Services
}

// New creates a new dependency injection container.
// No connection is opened here: the database is dialed per visit, and an
// unreachable database must not stop the page from being served.
func New(cfg *config.Config, logger *logger.Logger) (*Container, error) {
	connector, err := database.NewPostgresConnector(cfg.Database)
	if err != nil {
		return nil, err
	}

	// Initialize Redis client if Redis URL is configured
	var redisClient *redis.Client
	var counter service.VisitCounter
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, logger.Logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize Redis client, proceeding without visit counters")
		} else {
			redisClient = client
			counter = service.NewVisitCounter(client)
			logger.Info("Redis client initialized successfully")
		}
	} else {
		logger.Info("Redis URL not configured, proceeding without visit counters")
	}

	opts := []service.VisitServiceOption{service.WithQueryTimeout(cfg.Database.QueryTimeout)}
	if counter != nil {
		opts = append(opts, service.WithCounter(counter))
	}

	services := &service.Services{
		Visit:   service.NewVisitService(connector, logger, opts...),
		Counter: counter,
	}

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Connector:   connector,
		RedisClient: redisClient,
		Resolver:    utils.NewAddressResolver(cfg.StrictResolver),
		Services:    services,
	}, nil
}

// Close releases the Redis client; database connections are per request
func (c *Container) Close() error {
	if c.RedisClient != nil {
		return c.RedisClient.Close()
	}
	return nil
}
