package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Guard    GuardConfig    `mapstructure:"guard" validate:"required"`
	Session  SessionConfig  `mapstructure:"session" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes is how long a player token stays valid.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"gte=1,lte=44640"`

	// BCryptCost is the work factor for homework access codes.
	BCryptCost int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// GuardConfig tunes the per-step input guard.
type GuardConfig struct {
	MinInterval time.Duration `mapstructure:"min_interval" validate:"gte=0"`
	MaxAttempts int           `mapstructure:"max_attempts" validate:"gte=1,lte=20"`
}

// SessionConfig controls the in-memory exercise session registry.
type SessionConfig struct {
	// IdleTimeout is how long an untouched session survives.
	IdleTimeout time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`

	// ReapInterval is how often idle sessions are swept.
	ReapInterval time.Duration `mapstructure:"reap_interval" validate:"gt=0"`

	// MaxSessions caps concurrently open sessions.
	MaxSessions int `mapstructure:"max_sessions" validate:"gte=1"`
}
