package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const sampleConfig = `
http:
  address: ":5000"
database:
  host: localhost
  port: 5432
  user: app
  password: secret
  name: flights
  ssl_mode: disable
redis:
  addr: "localhost:6379"
kafka:
  brokers:
    - "localhost:9092"
  reservations_topic: reservation-events
  notifications_topic: reservation-notifications
  group_id: worker
auth:
  secret: file-secret
  token_ttl_hours: 12
flights:
  cache_ttl_seconds: 30
reserve:
  lock_timeout_millis: 1500
worker:
  audit_sweep_minutes: 5
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))

	assert.NoError(t, err)
	assert.Equal(t, ":5000", cfg.HTTP.Address)
	assert.Equal(t, "host=localhost port=5432 user=app password=secret dbname=flights sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "file-secret", cfg.Auth.Secret)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 30*time.Second, cfg.Flights.CacheTTL())
	assert.Equal(t, 1500*time.Millisecond, cfg.Reserve.LockTimeout())
}

func TestLoadConfig_SecretFromEnv(t *testing.T) {
	t.Setenv("SECRET_KEY", "env-secret")

	cfg, err := LoadConfig(writeConfig(t, sampleConfig))

	assert.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Auth.Secret)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "http:\n  address: \":5000\"\n"))

	assert.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 3*time.Second, cfg.Reserve.LockTimeout())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
