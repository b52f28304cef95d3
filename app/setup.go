package app

import (
	"fmt"
	"log"

	"github.com/studybridge/consultancy-api/api"
	"github.com/studybridge/consultancy-api/config"
	"github.com/studybridge/consultancy-api/router"
	"github.com/studybridge/consultancy-api/services/cron"
	"github.com/studybridge/consultancy-api/services/spaces"
	"github.com/studybridge/consultancy-api/utils/cache"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Blob store (DigitalOcean Spaces), the only persistence this service has
	spacesConfig, err := spaces.ConfigFromEnv()
	if err != nil {
		return err
	}
	blobs, err := spaces.NewClient(spacesConfig)
	if err != nil {
		return err
	}

	// Redis read cache (optional: reads fall through to the bucket without it)
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v. Document read cache will be disabled.", err)
			redisCache = nil
		}
	}
	defer func() {
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes (also applies security middleware)
	adminHandler, imageService := router.SetupRoutes(app, getEnv, blobs, redisCache)

	// Scheduled orphan image sweep (only when a schedule is configured)
	if getEnv.IMAGE_SWEEP_SCHEDULE != "" {
		cronManager := cron.NewCronManager(getEnv.IMAGE_SWEEP_SCHEDULE, cron.NewSweepJob(adminHandler, imageService))
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: Failed to start cron jobs: %v", err)
		} else {
			defer cronManager.Stop()
		}
	}

	// Get the PORT & Start the Server
	return server.Run()
}
