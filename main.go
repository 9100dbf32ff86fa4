package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seized-page/internal/config"
	"seized-page/internal/container"
	"seized-page/internal/handler"
	"seized-page/pkg/logger"
	"seized-page/pkg/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.WithFields(map[string]interface{}{
		"port":            cfg.Port,
		"log_level":       cfg.LogLevel,
		"environment":     cfg.Environment,
		"strict_resolver": cfg.StrictResolver,
		"redis":           cfg.RedisURL != "",
	}).Info("Starting seized-page server")

	// Create dependency injection container
	c, err := container.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.WithError(err).Error("Failed to close Redis connection")
		}
	}()

	// A nil *redis.Client must not become a non-nil Pinger
	var redisHealth handler.Pinger
	if c.RedisClient != nil {
		redisHealth = c.RedisClient
	}

	router := handler.NewRouter(handler.RouterDeps{
		Seizure: handler.NewSeizureHandler(c.Resolver, c.Services.Visit, log, cfg.ExposeDBErrors),
		Health:  handler.NewHealthHandler(c.Connector, redisHealth, log),
		Stats:   handler.NewStatsHandler(c.Services.Counter, log),
		Logger:  log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, server.New(cfg.Port, router), log, 25*time.Second); err != nil {
		log.WithError(err).Error("Server stopped with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}
