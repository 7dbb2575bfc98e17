package main

import (
	"os"
	"os/signal"
	"syscall"

	_ "time/tzdata"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/app"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/cache/redis"
	"github.com/rs/zerolog/log"
)

func main() {
	config := config.CreateNewConfig()

	redisClient, err := redis.CreateRedisClient(config)
	if err != nil {
		panic(err)
	}
	defer redisClient.Close()

	application := &app.App{
		Config: config,
		Redis:  redisClient,
	}

	go application.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	if err := application.StopServer(); err != nil {
		log.Error().Err(err).Msg("Failed to stop server")
	}
}
