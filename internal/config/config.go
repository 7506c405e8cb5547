package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env     string  `mapstructure:"env"`      // current application environment (local, dev, production etc)
	HTTP    HTTP    `mapstructure:"http"`     // HTTP server section
	Session Session `mapstructure:"session"`  // session cookie section
	Quiz    Quiz    `mapstructure:"quiz"`     // quiz defaults
	Admin   Admin   `mapstructure:"-"`        // bootstrap administrator loaded from environment
	DB      DB      `mapstructure:"database"` // database configuration section
}

// HTTP contains server parameters.
type HTTP struct {
	Addr           string        `mapstructure:"addr"`             // listen address
	RequestTimeout time.Duration `mapstructure:"request_timeout"`  // deadline applied to every request context
	LoginRateLimit int           `mapstructure:"login_rate_limit"` // login attempts per minute per client
}

// Session contains session cookie parameters.
type Session struct {
	TTL          time.Duration `mapstructure:"ttl"`           // session lifetime
	CookieName   string        `mapstructure:"cookie_name"`   // session cookie name
	CookieSecure bool          `mapstructure:"cookie_secure"` // send cookie over HTTPS only
}

// Quiz contains quiz selection defaults.
type Quiz struct {
	DefaultCount int `mapstructure:"default_count"` // questions per quiz when the request has no usable count
}

// Admin is the account ensured on startup. Empty email disables bootstrapping.
type Admin struct {
	Email    string
	Password string
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// Populate the environment from .env when present.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.request_timeout", "5s")
	v.SetDefault("http.login_rate_limit", 10)
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.cookie_name", "studyquiz_session")
	v.SetDefault("session.cookie_secure", false)
	v.SetDefault("quiz.default_count", 10)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("admin_email", "ADMIN_EMAIL")
	_ = v.BindEnv("admin_password", "ADMIN_PASSWORD")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Sensitive values come from the environment only.
	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.Admin.Email = v.GetString("admin_email")
	cfg.Admin.Password = v.GetString("admin_password")
	if cfg.Admin.Email != "" && cfg.Admin.Password == "" {
		return nil, fmt.Errorf("%w: ADMIN_PASSWORD", ErrMissingEnvironmentVariables)
	}

	if cfg.Quiz.DefaultCount <= 0 {
		cfg.Quiz.DefaultCount = 10
	}

	return &cfg, nil
}
