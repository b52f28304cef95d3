package spaces

import (
	"fmt"
	"os"
)

// ConfigFromEnv builds the Spaces configuration from environment variables.
// Bucket and region are required; the endpoint defaults to the regional
// DigitalOcean Spaces hostname.
func ConfigFromEnv() (Config, error) {
	config := Config{
		AccessKey: os.Getenv("DO_SPACES_ACCESS_KEY"),
		SecretKey: os.Getenv("DO_SPACES_SECRET_KEY"),
		Bucket:    os.Getenv("DO_SPACES_BUCKET"),
		Region:    os.Getenv("DO_SPACES_REGION"),
		Endpoint:  os.Getenv("DO_SPACES_ENDPOINT"),
		CDNURL:    os.Getenv("DO_SPACES_CDN_ENDPOINT"),
	}

	if config.Bucket == "" || config.Region == "" {
		return Config{}, fmt.Errorf("DO_SPACES_BUCKET and DO_SPACES_REGION must be configured")
	}
	if config.AccessKey == "" || config.SecretKey == "" {
		return Config{}, fmt.Errorf("DO_SPACES_ACCESS_KEY and DO_SPACES_SECRET_KEY must be configured")
	}

	if config.Endpoint == "" {
		config.Endpoint = fmt.Sprintf("%s.digitaloceanspaces.com", config.Region)
	}

	return config, nil
}
