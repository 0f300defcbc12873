package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the parser tooling. Everything has
// a sane default; env vars override.
type Config struct {
	// LogLevel is a zerolog level name: trace, debug, info, warn, error.
	LogLevel string

	// Workers is the number of concurrent parse workers in the feed queue.
	Workers int

	// QueueSize bounds how many messages wait in the feed queue before
	// publishing blocks.
	QueueSize int
}

const (
	defaultLogLevel  = "info"
	defaultWorkers   = 5
	defaultQueueSize = 100
)

// Load builds the config from the environment. A .env file in the working
// directory is loaded first when present; a missing file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:  getEnv("SMSPARSE_LOG_LEVEL", defaultLogLevel),
		Workers:   defaultWorkers,
		QueueSize: defaultQueueSize,
	}

	var err error
	if cfg.Workers, err = getEnvInt("SMSPARSE_WORKERS", defaultWorkers); err != nil {
		return nil, err
	}
	if cfg.QueueSize, err = getEnvInt("SMSPARSE_QUEUE_SIZE", defaultQueueSize); err != nil {
		return nil, err
	}

	if cfg.Workers < 1 {
		return nil, fmt.Errorf("config: SMSPARSE_WORKERS must be >= 1, got %d", cfg.Workers)
	}
	if cfg.QueueSize < 1 {
		return nil, fmt.Errorf("config: SMSPARSE_QUEUE_SIZE must be >= 1, got %d", cfg.QueueSize)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer, got %q", key, v)
	}
	return n, nil
}
