package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadENV loads the environment variables from .env unless GO_ENV says we
// are running in a deployed environment.
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil {
			return err
		}
	}

	return nil
}

// EnvironmentVariable holds process-wide configuration, established once at
// startup and treated as read-only thereafter.
type EnvironmentVariable struct {
	GO_ENV string
	PORT   int

	// Admin access
	ADMIN_API_TOKEN string

	// HTTP surface
	ALLOWED_ORIGINS string

	// Redis (optional read cache)
	REDIS_URL string

	// Orphan image sweep schedule (cron expression; empty disables)
	IMAGE_SWEEP_SCHEDULE string
}

// Get reads the environment into an EnvironmentVariable struct.
func Get() (*EnvironmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:               os.Getenv("GO_ENV"),
		PORT:                 port,
		ADMIN_API_TOKEN:      os.Getenv("ADMIN_API_TOKEN"),
		ALLOWED_ORIGINS:      allowedOrigins,
		REDIS_URL:            os.Getenv("REDIS_URL"),
		IMAGE_SWEEP_SCHEDULE: os.Getenv("IMAGE_SWEEP_SCHEDULE"),
	}

	if envVariables.ADMIN_API_TOKEN == "" {
		return nil, fmt.Errorf("ADMIN_API_TOKEN must be configured")
	}

	return envVariables, nil
}
