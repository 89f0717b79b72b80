package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DatabaseConfig(t *testing.T) {
	os.Setenv("DB_HOST", "db.internal")
	os.Setenv("DB_PORT", "5433")
	defer func() {
		os.Unsetenv("DB_HOST")
		os.Unsetenv("DB_PORT")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Contains(t, cfg.Database.DatabaseDSN(), "host=db.internal")
	assert.Contains(t, cfg.Database.DatabaseDSN(), "port=5433")
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("TYPESENSE_URL")
	os.Unsetenv("TYPESENSE_API_KEY")
	os.Unsetenv("SNAPSHOT_PATH")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "http://localhost:8108", cfg.Typesense.URL)
	assert.Equal(t, "xyz", cfg.Typesense.APIKey)
	assert.Equal(t, "clinics.geojson", cfg.Snapshot.Path)
	assert.Equal(t, "clinic_directory", cfg.Database.Database)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	os.Setenv("REDIS_PORT", "not-a-port")
	defer os.Unsetenv("REDIS_PORT")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
}
