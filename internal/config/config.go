package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	DatabaseDriver   string        `yaml:"database_driver"`    // postgres, pgx, mysql or sqlite3
	DatabaseURL      string        `yaml:"database_url"`       // DSN passed to sql.Open (required)
	DBConnectRetries int           `yaml:"db_connect_retries"` // Startup ping attempts
	DBQueryTimeout   time.Duration `yaml:"db_query_timeout"`   // Per-operation timeout, 0 disables it
	ServerAddr       string        `yaml:"server_addr"`
	LogLevel         string        `yaml:"log_level"`
	LogPretty        bool          `yaml:"log_pretty"`

	EventsBackend string   `yaml:"events_backend"` // redis, kafka or empty to disable
	EventsTopic   string   `yaml:"events_topic"`   // Redis channel or Kafka topic
	RedisURL      string   `yaml:"redis_url"`
	KafkaBrokers  []string `yaml:"kafka_brokers"`

	RateLimitRPS         float64 `yaml:"rate_limit_rps"`          // General API endpoints (requests per second)
	RateLimitBurst       int     `yaml:"rate_limit_burst"`        // Burst size for general endpoints
	RateLimitSchemaRPS   float64 `yaml:"rate_limit_schema_rps"`   // Schema-mutating endpoints (stricter)
	RateLimitSchemaBurst int     `yaml:"rate_limit_schema_burst"` // Burst size for schema-mutating endpoints
}

// Default returns the configuration used before any file or environment is applied.
func Default() *Config {
	return &Config{
		DatabaseDriver:       "postgres",
		DBConnectRetries:     5,
		ServerAddr:           ":8080",
		LogLevel:             "info",
		EventsTopic:          "users.schema",
		KafkaBrokers:         []string{"localhost:9092"},
		RateLimitRPS:         10,
		RateLimitBurst:       20,
		RateLimitSchemaRPS:   2,
		RateLimitSchemaBurst: 5,
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and finally the environment (a .env file is loaded first if present).
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file found, using environment variables or defaults")
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.DatabaseDriver = getEnv("DATABASE_DRIVER", cfg.DatabaseDriver)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.DBConnectRetries = getEnvInt("DB_CONNECT_RETRIES", cfg.DBConnectRetries)
	cfg.DBQueryTimeout = getEnvDuration("DB_QUERY_TIMEOUT", cfg.DBQueryTimeout)
	cfg.ServerAddr = getEnv("SERVER_ADDR", cfg.ServerAddr)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogPretty = getEnvBool("LOG_PRETTY", cfg.LogPretty)
	cfg.EventsBackend = getEnv("EVENTS_BACKEND", cfg.EventsBackend)
	cfg.EventsTopic = getEnv("EVENTS_TOPIC", cfg.EventsTopic)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.KafkaBrokers = getEnvList("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.RateLimitRPS = getEnvFloat("RATE_LIMIT_RPS", cfg.RateLimitRPS)
	cfg.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", cfg.RateLimitBurst)
	cfg.RateLimitSchemaRPS = getEnvFloat("RATE_LIMIT_SCHEMA_RPS", cfg.RateLimitSchemaRPS)
	cfg.RateLimitSchemaBurst = getEnvInt("RATE_LIMIT_SCHEMA_BURST", cfg.RateLimitSchemaBurst)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the required keys and enumerated values.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	switch c.DatabaseDriver {
	case "postgres", "pgx", "mysql", "sqlite3":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	switch c.EventsBackend {
	case "", "redis", "kafka":
	default:
		return fmt.Errorf("unsupported EVENTS_BACKEND %q", c.EventsBackend)
	}
	if c.EventsBackend == "redis" && c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when EVENTS_BACKEND=redis")
	}
	if c.DBQueryTimeout < 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must not be negative")
	}
	return nil
}

// String returns a printable form of the config with the DSN masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Driver: %s, DSN: *** (masked) ***, Addr: %s, Events: %q}",
		c.DatabaseDriver, c.ServerAddr, c.EventsBackend)
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
