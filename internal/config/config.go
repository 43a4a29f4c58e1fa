package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/post-engagement-api/internal/models"
)

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Storage backend selection
	Storage StorageConfig

	// Database configuration
	Database DatabaseConfig

	// Mongo configuration
	Mongo MongoConfig

	// Credentials and session tokens
	Auth AuthConfig

	// Post content limits
	Posts PostsConfig

	// User projection cache
	Cache CacheConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	AllowedOrigins  string
}

// StorageConfig picks the persistence backend
type StorageConfig struct {
	Driver string // "postgres" or "mongo"
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxOpenConns   int
	MaxIdleConns   int
	MaxLifetime    time.Duration
	MigrationsPath string
}

// MongoConfig holds document store settings
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// AuthConfig holds credential settings
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// PostsConfig holds post content limits
type PostsConfig struct {
	MaxImageBytes      int64
	ReportPreviewRunes int
}

// CacheConfig holds user cache settings
type CacheConfig struct {
	Enabled  bool
	TTL      time.Duration
	MaxItems int64
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// defaults are keyed by the lower-cased environment variable name
var defaults = map[string]interface{}{
	"port":                    "8080",
	"server_read_timeout":     "30s",
	"server_write_timeout":    "60s",
	"server_shutdown_timeout": "30s",
	"max_body_bytes":          6 * 1024 * 1024,
	"cors_allowed_origins":    "*",

	"storage_driver": DriverPostgres,

	"db_host":           "localhost",
	"db_port":           "5432",
	"db_user":           "postgres",
	"db_password":       "postgres",
	"db_name":           "post_engagement",
	"db_sslmode":        "disable",
	"db_max_open_conns": 25,
	"db_max_idle_conns": 5,
	"db_max_lifetime":   "5m",
	"migrations_path":   "migrations",

	"mongo_uri":             "mongodb://localhost:27017",
	"mongo_database":        "post_engagement",
	"mongo_connect_timeout": "10s",

	"jwt_secret":  "",
	"token_ttl":   "24h",
	"bcrypt_cost": 10,

	"max_image_bytes":      models.MaxImageBytes,
	"report_preview_runes": 500,

	"user_cache_enabled":   true,
	"user_cache_ttl":       "5m",
	"user_cache_max_items": 10000,

	"log_level":  "info",
	"log_format": "json",
}

// Load reads configuration from defaults, an optional settings.toml and
// environment variables, in increasing order of precedence
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.SetConfigName("settings")
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	v.AutomaticEnv()

	cfg := fromViper(v)

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// fromViper maps flat keys onto the typed sections
func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:            v.GetString("port"),
			ReadTimeout:     v.GetDuration("server_read_timeout"),
			WriteTimeout:    v.GetDuration("server_write_timeout"),
			ShutdownTimeout: v.GetDuration("server_shutdown_timeout"),
			MaxBodyBytes:    v.GetInt64("max_body_bytes"),
			AllowedOrigins:  v.GetString("cors_allowed_origins"),
		},
		Storage: StorageConfig{
			Driver: v.GetString("storage_driver"),
		},
		Database: DatabaseConfig{
			Host:           v.GetString("db_host"),
			Port:           v.GetString("db_port"),
			User:           v.GetString("db_user"),
			Password:       v.GetString("db_password"),
			Name:           v.GetString("db_name"),
			SSLMode:        v.GetString("db_sslmode"),
			MaxOpenConns:   v.GetInt("db_max_open_conns"),
			MaxIdleConns:   v.GetInt("db_max_idle_conns"),
			MaxLifetime:    v.GetDuration("db_max_lifetime"),
			MigrationsPath: v.GetString("migrations_path"),
		},
		Mongo: MongoConfig{
			URI:            v.GetString("mongo_uri"),
			Database:       v.GetString("mongo_database"),
			ConnectTimeout: v.GetDuration("mongo_connect_timeout"),
		},
		Auth: AuthConfig{
			JWTSecret:  v.GetString("jwt_secret"),
			TokenTTL:   v.GetDuration("token_ttl"),
			BcryptCost: v.GetInt("bcrypt_cost"),
		},
		Posts: PostsConfig{
			MaxImageBytes:      v.GetInt64("max_image_bytes"),
			ReportPreviewRunes: v.GetInt("report_preview_runes"),
		},
		Cache: CacheConfig{
			Enabled:  v.GetBool("user_cache_enabled"),
			TTL:      v.GetDuration("user_cache_ttl"),
			MaxItems: v.GetInt64("user_cache_max_items"),
		},
		Log: LogConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required")
		}
		if c.Mongo.Database == "" {
			return fmt.Errorf("MONGO_DATABASE is required")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMongo, c.Storage.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.Posts.MaxImageBytes <= 0 {
		return fmt.Errorf("MAX_IMAGE_BYTES must be positive")
	}
	if c.Server.MaxBodyBytes < c.Posts.MaxImageBytes {
		return fmt.Errorf("MAX_BODY_BYTES (%d) must not be smaller than MAX_IMAGE_BYTES (%d)", c.Server.MaxBodyBytes, c.Posts.MaxImageBytes)
	}
	if c.Cache.Enabled && c.Cache.MaxItems <= 0 {
		return fmt.Errorf("USER_CACHE_MAX_ITEMS must be positive when the cache is enabled")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

