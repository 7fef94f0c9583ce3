package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")

	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "book-catalog", config.App.Name)
	assert.Equal(t, "8080", config.App.Port)
	assert.Equal(t, []string{"*"}, config.App.CORSOrigins)
	assert.Equal(t, 10*time.Second, config.App.ShutdownTimeout)
	assert.Equal(t, "localhost", config.Database.Host)
	assert.Equal(t, int32(10), config.Database.MaxConns)
	assert.Equal(t, "HS256", config.JWT.Algorithm)
	assert.Equal(t, time.Hour, config.JWT.TTL())
	assert.Equal(t, "from-env", config.JWT.Secret)
	assert.Equal(t, "seed_data.json", config.Seed.Path)
	assert.True(t, config.Seed.OnStart)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9090\nJWT_SECRET=file-secret\nCORS_ORIGINS=http://a.test,http://b.test\nDB_NAME=catalog\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("PORT", "7070")

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", config.App.Port)
	assert.Equal(t, "file-secret", config.JWT.Secret)
	assert.Equal(t, "catalog", config.Database.Name)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, config.App.CORSOrigins)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App: AppConfig{Port: "8080"},
			JWT: JWTConfig{Secret: "s", Algorithm: "HS256", ExpiryMinutes: 60},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "empty secret", mutate: func(c *Config) { c.JWT.Secret = "" }},
		{name: "asymmetric algorithm", mutate: func(c *Config) { c.JWT.Algorithm = "RS256" }},
		{name: "unknown algorithm", mutate: func(c *Config) { c.JWT.Algorithm = "XYZ" }},
		{name: "zero ttl", mutate: func(c *Config) { c.JWT.ExpiryMinutes = 0 }},
		{name: "empty port", mutate: func(c *Config) { c.App.Port = "" }},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
