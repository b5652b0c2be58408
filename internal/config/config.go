package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the schedule scraper.
type Config struct {
	Schedule  ScheduleConfig
	Fetcher   FetcherConfig
	Cache     CacheConfig
	Metrics   MetricsConfig
	TeamsFile string
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with sensible defaults.
// Variables in a .env file in the working directory are applied first; values
// already present in the environment win.
func Load() Config {
	_ = loadDotEnv(dotEnvFile)
	return Config{
		Schedule:  loadSchedule(),
		Fetcher:   loadFetcher(),
		Cache:     loadCache(),
		Metrics:   loadMetrics(),
		TeamsFile: envOrDefault(envTeamsFile, ""),
		LogLevel:  envOrDefault(envLogLevel, defaultLogLevel),
		LogFormat: envOrDefault(envLogFormat, defaultLogFormat),
	}
}

// loadDotEnv applies path to the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
