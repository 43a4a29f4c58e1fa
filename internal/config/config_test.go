package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(6*1024*1024), cfg.Server.MaxBodyBytes)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, int64(2621440), cfg.Posts.MaxImageBytes)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "mongo")
	t.Setenv("MONGO_DATABASE", "engagement_test")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("USER_CACHE_ENABLED", "false")
	t.Setenv("LOG_FORMAT", "pretty")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverMongo, cfg.Storage.Driver)
	assert.Equal(t, "engagement_test", cfg.Mongo.Database)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "pretty", cfg.Log.Format)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()

	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{MaxBodyBytes: 6 << 20},
			Storage:  StorageConfig{Driver: DriverPostgres},
			Database: DatabaseConfig{Host: "localhost", Name: "db"},
			Auth:     AuthConfig{JWTSecret: "x", TokenTTL: time.Hour},
			Posts:    PostsConfig{MaxImageBytes: 2621440},
			Cache:    CacheConfig{Enabled: true, MaxItems: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "sqlite" }, wantErr: "STORAGE_DRIVER"},
		{name: "missing db host", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: "DB_HOST"},
		{name: "mongo without uri", mutate: func(c *Config) { c.Storage.Driver = DriverMongo }, wantErr: "MONGO_URI"},
		{name: "body smaller than image", mutate: func(c *Config) { c.Server.MaxBodyBytes = 1024 }, wantErr: "MAX_BODY_BYTES"},
		{name: "cache without capacity", mutate: func(c *Config) { c.Cache.MaxItems = 0 }, wantErr: "USER_CACHE_MAX_ITEMS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: "1", User: "u", Password: "p", Name: "n", SSLMode: "disable"}

	assert.Equal(t, "host=h port=1 user=u password=p dbname=n sslmode=disable", c.GetDSN())
}
