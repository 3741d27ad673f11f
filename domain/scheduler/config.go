package scheduler

import (
	"os"
	"strconv"
	"time"
)

// Config holds scheduler configuration.
type Config struct {
	// Enabled controls whether the scheduler runs.
	Enabled bool

	// RegistryRefreshInterval is how often the edge type registry cache
	// is reloaded from Postgres.
	RegistryRefreshInterval time.Duration

	// RegistryRefreshSchedule overrides RegistryRefreshInterval with a
	// cron expression when set.
	RegistryRefreshSchedule string
}

// NewConfig creates a new Config from environment variables.
func NewConfig() *Config {
	return &Config{
		Enabled:                 getEnvBool("SCHEDULER_ENABLED", true),
		RegistryRefreshInterval: getEnvDuration("LINEAGE_REGISTRY_REFRESH_INTERVAL_MS", 5*time.Minute),
		RegistryRefreshSchedule: getEnvString("REGISTRY_REFRESH_SCHEDULE", ""),
	}
}

// getEnvBool returns a boolean from an environment variable.
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvDuration returns a duration from an environment variable (in milliseconds).
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if ms, err := strconv.Atoi(val); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultVal
}

// getEnvString returns a string from an environment variable.
func getEnvString(key string, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
