package config

import (
	"errors"
	"fmt"
	"strconv"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requirement is a setting that must be present in an environment.
type requirement struct {
	field string
	value func(*Config) string
	// postgresOnly requirements are skipped for sqlite deployments.
	postgresOnly bool
}

var (
	reqJWTSecret  = requirement{field: "JWT_SECRET", value: func(c *Config) string { return c.JWTSecret }}
	reqAPIKey     = requirement{field: "API_KEY", value: func(c *Config) string { return c.APIKey }}
	reqDBPassword = requirement{field: "DB_PASSWORD", value: func(c *Config) string { return c.DBPassword }, postgresOnly: true}
	reqRedis      = requirement{field: "REDIS_URL", value: func(c *Config) string {
		if c.RedisURL != "" {
			return c.RedisURL
		}
		return c.RedisHost
	}}

	// Environment-specific requirements
	requirements = map[Environment][]requirement{
		Development: {},
		Test:        {},
		CI:          {reqJWTSecret, reqDBPassword},
		Production:  {reqJWTSecret, reqAPIKey, reqDBPassword, reqRedis},
	}
)

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	var errs []error

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}

	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.PurgeInterval <= 0 {
		errs = append(errs, ValidationError{Field: "TRASH_PURGE_INTERVAL", Message: "must be positive"})
	}
	if cfg.TrashRetention < 0 {
		errs = append(errs, ValidationError{Field: "TRASH_RETENTION", Message: "must not be negative"})
	}

	for _, req := range requirements[cfg.Environment] {
		if req.postgresOnly && cfg.DBDriver != DriverPostgres {
			continue
		}
		if req.value(cfg) == "" {
			errs = append(errs, ValidationError{Field: req.field, Message: fmt.Sprintf("required in %s environment", cfg.Environment)})
		}
	}

	return errors.Join(errs...)
}
