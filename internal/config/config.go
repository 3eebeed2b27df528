package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Storage  StorageConfig
	App      AppConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration. The API key guards service
// access; user identity arrives per request from the external identity
// provider.
type AuthConfig struct {
	APIKey string
}

// StorageConfig holds attachment storage configuration. When S3 is disabled
// the service keeps attachments on the local file system instead.
type StorageConfig struct {
	S3Enabled     bool
	Bucket        string
	Region        string
	Prefix        string // key prefix within the bucket (e.g. "attachments/")
	PresignTTLMin int    // lifetime of presigned download URLs, minutes
	LocalDir      string // fallback directory when S3 is disabled
}

// AppConfig holds application-level tuning knobs for the dashboard views.
type AppConfig struct {
	UpcomingLimit   int    // upcoming-expiry list size on the dashboard
	RecentLimit     int    // recently-added list size on the dashboard
	DefaultLanguage string // BCP 47 tag used for name collation fallback
	DefaultCurrency string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "warrantyvault"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Storage: StorageConfig{
			S3Enabled:     getEnvAsBool("S3_ENABLED", false),
			Bucket:        getEnv("S3_BUCKET", ""),
			Region:        getEnv("S3_REGION", "eu-central-1"),
			Prefix:        getEnv("S3_PREFIX", "attachments/"),
			PresignTTLMin: getEnvAsInt("S3_PRESIGN_TTL_MINUTES", 15),
			LocalDir:      getEnv("STORAGE_LOCAL_DIR", "./data/attachments"),
		},
		App: AppConfig{
			UpcomingLimit:   getEnvAsInt("DASHBOARD_UPCOMING_LIMIT", 5),
			RecentLimit:     getEnvAsInt("DASHBOARD_RECENT_LIMIT", 6),
			DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
			DefaultCurrency: getEnv("DEFAULT_CURRENCY", "EUR"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Storage.S3Enabled {
		if c.Storage.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.Storage.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	} else if c.Storage.LocalDir == "" {
		return fmt.Errorf("local storage directory is required when S3 is disabled")
	}

	if c.Storage.PresignTTLMin < 1 {
		return fmt.Errorf("presign TTL must be at least 1 minute")
	}

	if c.App.UpcomingLimit < 1 {
		return fmt.Errorf("dashboard upcoming limit must be at least 1")
	}

	if c.App.RecentLimit < 1 {
		return fmt.Errorf("dashboard recent limit must be at least 1")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
