package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Cloudinary CloudinaryConfig
	Redis      RedisConfig
	CORS       CORSConfig
	Logging    LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
	MaxBodyBytes    int64 // JSON body limit; multipart uploads are bounded by MaxUploadBytes
	MaxUploadBytes  int64
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	ConnectTimeout  time.Duration
	MigrationsPath  string
}

// AuthConfig holds token issuance configuration
type AuthConfig struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	BcryptCost         int
	CookieSecure       bool
	CookieSameSite     http.SameSite
}

// CloudinaryConfig holds media storage credentials
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// RedisConfig holds cache configuration. An empty Addr disables Redis and
// the application falls back to an in-process cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CORSConfig holds cross-origin policy
type CORSConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level       string
	Development bool
}

// Load reads configuration from the environment, consulting a .env file
// outside production.
func Load() (*Config, error) {
	env := getEnv("GO_ENV", "development")
	if env != "production" {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("HOST", "0.0.0.0"),
			Port:            getEnv("PORT", "8000"),
			Environment:     env,
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
			GracefulTimeout: getDurationEnv("SERVER_GRACEFUL_TIMEOUT", 15*time.Second),
			MaxBodyBytes:    getInt64Env("MAX_BODY_BYTES", 16<<10),
			MaxUploadBytes:  getInt64Env("MAX_UPLOAD_BYTES", 100<<20),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getDurationEnv("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			ConnectTimeout:  getDurationEnv("DB_CONNECT_TIMEOUT", 30*time.Second),
			MigrationsPath:  getEnv("DB_MIGRATIONS_PATH", "migrations"),
		},
		Auth: AuthConfig{
			AccessTokenSecret:  getEnv("ACCESS_TOKEN_SECRET", ""),
			RefreshTokenSecret: getEnv("REFRESH_TOKEN_SECRET", ""),
			AccessTokenTTL:     getDurationEnv("ACCESS_TOKEN_TTL", 15*time.Minute),
			RefreshTokenTTL:    getDurationEnv("REFRESH_TOKEN_TTL", 10*24*time.Hour),
			BcryptCost:         getIntEnv("BCRYPT_COST", 12),
			CookieSecure:       getBoolEnv("COOKIE_SECURE", env == "production"),
			CookieSameSite:     http.SameSiteLaxMode,
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    getEnv("CLOUDINARY_FOLDER", "vidhub"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		CORS: CORSConfig{
			AllowedOrigins:   splitEnv("CORS_ORIGIN", "*"),
			AllowCredentials: getBoolEnv("CORS_CREDENTIALS", true),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: env != "production",
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that required settings are present and sane.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth.AccessTokenSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}
	if c.Auth.RefreshTokenSecret == "" {
		return fmt.Errorf("REFRESH_TOKEN_SECRET is required")
	}
	if c.Auth.AccessTokenSecret == c.Auth.RefreshTokenSecret {
		return fmt.Errorf("access and refresh token secrets must differ")
	}
	if c.Auth.AccessTokenTTL >= c.Auth.RefreshTokenTTL {
		return fmt.Errorf("access token TTL must be shorter than refresh token TTL")
	}
	if c.Auth.BcryptCost < 10 || c.Auth.BcryptCost > 16 {
		return fmt.Errorf("bcrypt cost %d out of range [10,16]", c.Auth.BcryptCost)
	}
	if c.Server.MaxBodyBytes <= 0 || c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("body limits must be positive")
	}
	return nil
}

// Addr returns the host:port the server binds to.
func (s *ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// IsProduction reports whether the server runs in production mode.
func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitEnv(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
