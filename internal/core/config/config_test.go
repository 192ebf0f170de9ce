package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_DefaultsAndFile(t *testing.T) {
	p := writeYAML(t, `
app:
  env: production
jwt:
  secret: s3cret
db:
  driver: postgres
  dsn: host=db
`)
	c, err := Load(p)
	require.NoError(t, err)

	assert.True(t, c.App.IsProduction())
	assert.Equal(t, 5000, c.App.HTTP.Port)
	assert.Equal(t, 7*24*time.Hour, c.JWT.TTL())
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, "admin@healthblog.com", c.Seed.AdminEmail)
	assert.False(t, c.Redis.Enabled())
	assert.Equal(t, 30*time.Second, c.Cache.DashboardTTL())
}

func TestLoad_EnvOverride(t *testing.T) {
	p := writeYAML(t, "jwt:\n  secret: from-file\n")
	t.Setenv("APP_JWT_SECRET", "from-env")
	t.Setenv("APP_REDIS_ADDR", "127.0.0.1:6379")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.JWT.Secret)
	assert.True(t, c.Redis.Enabled())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "x")
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.DB.Driver)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"no secret", "db:\n  driver: sqlite\n", "jwt.secret"},
		{"bad driver", "jwt:\n  secret: x\ndb:\n  driver: mongo\n", "db.driver"},
		{"bad ttl", "jwt:\n  secret: x\n  access_token_ttl_min: 0\n", "access_token_ttl_min"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeYAML(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
