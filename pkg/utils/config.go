package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Seed     SeedConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	MigrateOnStart  bool
	MetricsEnabled  bool
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type JWTConfig struct {
	Secret        string
	Algorithm     string
	ExpiryMinutes int
}

// TTL is the lifetime of an issued access token.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpiryMinutes) * time.Minute
}

type AuthConfig struct {
	// Users holds "username:bcrypt-hash" pairs separated by commas.
	Users string
}

type SeedConfig struct {
	Path    string
	OnStart bool
}

// LoadConfig reads an env-format file (missing file is fine) and lets process environment override it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "book-catalog")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("MIGRATE_ON_START", true)
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_ALGORITHM", "HS256")
	v.SetDefault("JWT_EXPIRY_MINUTES", 60)
	v.SetDefault("SEED_PATH", "seed_data.json")
	v.SetDefault("SEED_ON_START", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			MigrateOnStart:  v.GetBool("MIGRATE_ON_START"),
			MetricsEnabled:  v.GetBool("METRICS_ENABLED"),
			CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
			ShutdownTimeout: time.Duration(v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			Algorithm:     v.GetString("JWT_ALGORITHM"),
			ExpiryMinutes: v.GetInt("JWT_EXPIRY_MINUTES"),
		},
		Auth: AuthConfig{
			Users: v.GetString("AUTH_USERS"),
		},
		Seed: SeedConfig{
			Path:    v.GetString("SEED_PATH"),
			OnStart: v.GetBool("SEED_ON_START"),
		},
	}

	return config, nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errs []string

	if c.JWT.Secret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}
	if _, ok := jwt.GetSigningMethod(c.JWT.Algorithm).(*jwt.SigningMethodHMAC); !ok {
		errs = append(errs, fmt.Sprintf("JWT_ALGORITHM %q is not an HMAC algorithm (HS256, HS384, HS512)", c.JWT.Algorithm))
	}
	if c.JWT.ExpiryMinutes <= 0 {
		errs = append(errs, "JWT_EXPIRY_MINUTES must be positive")
	}
	if c.App.Port == "" {
		errs = append(errs, "PORT is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
