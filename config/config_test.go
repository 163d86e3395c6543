package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test_secret_key", cfg.JWT.Secret)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, int64(5), cfg.Login.MaxAttempts)
	assert.False(t, cfg.S3.Enabled())
	assert.False(t, cfg.App.IsProduction())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("JWT_EXPIRATION_TIME", "60")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGO_MAX_POOL_SIZE", "7")
	t.Setenv("LOGIN_ATTEMPT_WINDOW", "1m")
	t.Setenv("S3_BUCKET", "media")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, http://localhost:3000,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, uint64(7), cfg.Database.MaxPoolSize)
	assert.Equal(t, time.Minute, cfg.Login.Window)
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:3000"}, cfg.App.CORSOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing secret outside test",
			mutate:  func(c *Config) { c.App.Env = "development"; c.JWT.Secret = "" },
			wantErr: "JWT_SECRET_KEY",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "postgres" },
			wantErr: "STORE_DRIVER",
		},
		{
			name:    "zero attempts",
			mutate:  func(c *Config) { c.Login.MaxAttempts = 0 },
			wantErr: "LOGIN_MAX_ATTEMPTS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				App:      AppConfig{Env: EnvTest},
				Database: DatabaseConfig{Driver: DriverMemory},
				JWT:      JWTConfig{Secret: "x", Expiration: time.Hour},
				Login:    LoginConfig{MaxAttempts: 3},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
