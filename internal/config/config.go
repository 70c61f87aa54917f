package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"required,gt=0"`
}

// DatabaseConfig selects and configures the storage backend.
//
// Backend "memory" keeps everything in process and loses it on restart,
// "sqlite" persists to a single file at Path, and "postgres" connects to
// the server at URL.
type DatabaseConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=memory sqlite postgres"`
	Path    string `mapstructure:"path" validate:"required_if=Backend sqlite"`
	URL     string `mapstructure:"url" validate:"required_if=Backend postgres,omitempty,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`

	// DefaultUserEmail and DefaultUserPassword seed the single local
	// account on first start. They are ignored once an account exists.
	DefaultUserEmail    string `mapstructure:"default_user_email" validate:"required,email"`
	DefaultUserPassword string `mapstructure:"default_user_password" validate:"required,min=8"`
}
