package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

// Config holds all application configuration
type Config struct {
	// Server settings
	ServerPort    int    `env:"SERVER_PORT" envDefault:"3002"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0"`
	Environment   string `env:"ENVIRONMENT" envDefault:"local"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// Database settings
	Database DatabaseConfig

	// OpenTelemetry tracing
	Otel OtelConfig

	// Lineage traversal engine tuning
	Lineage LineageConfig

	// Server timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host         string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port         int           `env:"POSTGRES_PORT" envDefault:"5432"`
	User         string        `env:"POSTGRES_USER" envDefault:"lineage"`
	Password     string        `env:"POSTGRES_PASSWORD" envDefault:""`
	Database     string        `env:"POSTGRES_DB" envDefault:"lineage"`
	SSLMode      string        `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	MaxIdleTime  time.Duration `env:"DB_MAX_IDLE_TIME" envDefault:"5m"`
	QueryDebug   bool          `env:"DB_QUERY_DEBUG" envDefault:"false"`
}

// DSN returns the PostgreSQL connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode,
	)
}

// LineageConfig tunes the lineage traversal engine's batching, deadline
// and pagination behavior. Defaults match the documented contract values.
type LineageConfig struct {
	// BatchSize is the maximum number of frontier urns grouped into a single
	// per-hop search dispatch.
	BatchSize int `env:"LINEAGE_BATCH_SIZE" envDefault:"1000"`

	// MaxElasticResult is the page size used for each batch search.
	MaxElasticResult int `env:"LINEAGE_MAX_RESULT" envDefault:"10000"`

	// DeadlineSeconds is the wall-clock budget for a single traversal call.
	DeadlineSeconds int `env:"LINEAGE_DEADLINE_SECONDS" envDefault:"10"`

	// MaxHops caps the depth a caller may request.
	MaxHops int `env:"LINEAGE_MAX_HOPS" envDefault:"20"`

	// SearchConcurrency, when positive, throttles batch dispatches to this
	// many per second (with a burst of the same size); 0 means unthrottled.
	SearchConcurrency int `env:"LINEAGE_SEARCH_CONCURRENCY" envDefault:"0"`

	// RegistryRefreshInterval is loaded but not read by any component; the
	// registry cache reload interval comes from the scheduler's own config
	// (LINEAGE_REGISTRY_REFRESH_INTERVAL_MS).
	RegistryRefreshInterval time.Duration `env:"LINEAGE_REGISTRY_REFRESH_INTERVAL" envDefault:"5m"`

	// ManualSource is the properties.source sentinel marking an edge as
	// manually authored and therefore exempt from time-range filtering.
	ManualSource string `env:"LINEAGE_MANUAL_SOURCE" envDefault:"UI"`
}

// Deadline returns the configured traversal deadline as a Duration.
func (l LineageConfig) Deadline() time.Duration {
	return time.Duration(l.DeadlineSeconds) * time.Second
}

// NewConfig loads configuration from environment variables
func NewConfig(log *slog.Logger) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	log.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.ServerPort),
		slog.String("db_host", cfg.Database.Host),
		slog.Int("lineage_max_hops", cfg.Lineage.MaxHops),
	)

	return cfg, nil
}
