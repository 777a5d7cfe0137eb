package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	DataDir     string

	// Tracker credentials. Token may be empty; the poller then skips fetching.
	TapdAPIBase       string
	TapdToken         string
	TapdWorkspaceID   string
	TapdUserName      string
	TapdUserRoleField string

	// Timer cadences for the game loop and the tracker poll.
	TickInterval time.Duration
	PollInterval time.Duration

	// Static resources.
	EventConfigPath     string
	CharacterConfigPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
		Environment:         getEnv("ENVIRONMENT", "dev"),
		DataDir:             getEnv("DATA_DIR", defaultDataDir()),
		TapdAPIBase:         getEnv("TAPD_API_BASE", "https://api.tapd.cn"),
		TapdToken:           getEnv("TAPD_API_TOKEN", ""),
		TapdWorkspaceID:     getEnv("TAPD_WORKSPACE_ID", ""),
		TapdUserName:        getEnv("TAPD_NAME", ""),
		TapdUserRoleField:   getEnv("TAPD_USER_ROLE_FIELD", ""),
		EventConfigPath:     getEnv("EVENT_CONFIG_PATH", "configs/world-events.json"),
		CharacterConfigPath: getEnv("CHARACTER_CONFIG_PATH", "configs/characters.json"),
	}

	portStr := getEnv("PORT", "8484")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	tick, err := getEnvDuration("TICK_INTERVAL", time.Second)
	if err != nil {
		return nil, err
	}
	cfg.TickInterval = tick

	poll, err := getEnvDuration("POLL_INTERVAL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.PollInterval = poll

	return cfg, nil
}

// DBPath returns the location of the local save database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "worldline.db")
}

// HasToken reports whether tracker credentials are configured.
func (c *Config) HasToken() bool {
	return c.TapdToken != ""
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".worldline")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}
