package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// devJWTSecret signs tokens in development and test when no secret is set.
const devJWTSecret = "recipebox-development-secret"

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	MigrationsDir string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Auth
	JWTSecret string
	APIKey    string

	// Image storage
	S3Bucket  string
	AWSRegion string

	LogLevel string

	// Background work and caching
	PurgeInterval   time.Duration
	TrashRetention  time.Duration
	DisplayCacheTTL time.Duration
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Addr is the address the HTTP server listens on.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// loader collects parse problems so they are reported together.
type loader struct {
	env  Environment
	errs []error
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	l := &loader{env: GetEnvironment()}

	cfg := &Config{
		Environment:   l.env,
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		ServerHost:    getEnv("SERVER_HOST", "0.0.0.0"),
		CORSOrigins:   splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        l.sensitive("db_user", "DB_USER", "postgres"),
		DBPassword:    l.sensitive("db_password", "DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "recipebox"),
		DBSSLMode:     getEnv("DB_SSL_MODE", "disable"),
		SQLitePath:    getEnv("SQLITE_PATH", "recipebox.db"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: l.sensitive("redis_password", "REDIS_PASSWORD", ""),
		RedisDB:       l.int("REDIS_DB", 0),
		RedisURL:      getEnv("REDIS_URL", ""),
		JWTSecret:     l.sensitive("jwt_secret", "JWT_SECRET", ""),
		APIKey:        l.sensitive("api_key", "API_KEY", ""),
		S3Bucket:      getEnv("S3_BUCKET_NAME", ""),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),

		PurgeInterval:   l.duration("TRASH_PURGE_INTERVAL", time.Hour),
		TrashRetention:  l.duration("TRASH_RETENTION", 0),
		DisplayCacheTTL: l.duration("DISPLAY_CACHE_TTL", 10*time.Minute),
	}

	if cfg.JWTSecret == "" && (l.env == Development || l.env == Test) {
		cfg.JWTSecret = devJWTSecret
	}

	if err := errors.Join(l.errs...); err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", l.env, err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// sensitive reads a value from Docker secrets, falling back to the
// environment. CI has no secrets mount and reads the environment only.
func (l *loader) sensitive(secret, envVar, def string) string {
	if l.env != CI {
		if v := readSecret(secret); v != "" {
			return v
		}
	}
	return getEnv(envVar, def)
}

func (l *loader) int(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		l.errs = append(l.errs, ValidationError{Field: key, Message: fmt.Sprintf("not an integer: %q", raw)})
		return def
	}
	return n
}

func (l *loader) duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		l.errs = append(l.errs, ValidationError{Field: key, Message: fmt.Sprintf("not a duration: %q", raw)})
		return def
	}
	return d
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
