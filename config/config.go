// Package config reads service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"kacchi/utils"

	"github.com/joho/godotenv"
)

const (
	EnvProduction = "production"
	EnvTest       = "test"
)

type AppConfig struct {
	Env          string
	Port         string
	LogLevel     string
	MaxBodyBytes int64
	// CORSOrigins is empty when every origin may call the API.
	CORSOrigins []string
}

func (a AppConfig) IsProduction() bool { return a.Env == EnvProduction }

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type RedisConfig struct {
	URL string
}

type LoginConfig struct {
	MaxAttempts int64
	Window      time.Duration
}

type S3Config struct {
	Region    string
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
}

func (s S3Config) Enabled() bool { return s.Bucket != "" }

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Login    LoginConfig
	S3       S3Config
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:          utils.GetEnvAsString("APP_ENV", "development"),
			Port:         utils.GetEnvAsString("PORT", "5000"),
			LogLevel:     utils.GetEnvAsString("LOG_LEVEL", "info"),
			MaxBodyBytes: utils.GetEnvAsInt64("MAX_BODY_BYTES", 1<<20),
			CORSOrigins:  splitList(os.Getenv("CORS_ORIGINS")),
		},
		Database: LoadDatabaseConfig(),
		JWT: JWTConfig{
			Secret:     os.Getenv("JWT_SECRET_KEY"),
			Expiration: time.Duration(utils.GetEnvAsInt64("JWT_EXPIRATION_TIME", 7*24*3600)) * time.Second,
			Issuer:     "kacchi-likhavat",
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Login: LoginConfig{
			MaxAttempts: utils.GetEnvAsInt64("LOGIN_MAX_ATTEMPTS", 5),
			Window:      utils.GetEnvAsDuration("LOGIN_ATTEMPT_WINDOW", 15*time.Minute),
		},
		S3: S3Config{
			Region:    utils.GetEnvAsString("S3_REGION", "us-east-1"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Bucket:    os.Getenv("S3_BUCKET"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		if c.App.Env != EnvTest {
			return errors.New("required environment variable JWT_SECRET_KEY is not set")
		}
		c.JWT.Secret = "test_secret_key"
	}
	if c.JWT.Expiration <= 0 {
		return errors.New("JWT_EXPIRATION_TIME must be positive")
	}
	switch c.Database.Driver {
	case DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Database.Driver)
	}
	if c.Login.MaxAttempts < 1 {
		return errors.New("LOGIN_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}
