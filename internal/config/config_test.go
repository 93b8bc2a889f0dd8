package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "redis", cfg.EventsSink)
	assert.Equal(t, 60, cfg.DemandCacheTTLSeconds)
	assert.Equal(t, "plan-events", cfg.KafkaTopic)
	assert.Equal(t, "*", cfg.CORSOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("EVENTS_SINK", " Kafka ")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "kafka", cfg.EventsSink)
	assert.Equal(t, "k1:9092,k2:9092", cfg.KafkaBrokers)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
}

func TestValidate(t *testing.T) {
	base := Config{JWTSecret: "s", EventsSink: "none"}
	assert.NoError(t, base.Validate())

	missingSecret := base
	missingSecret.JWTSecret = ""
	assert.Error(t, missingSecret.Validate())

	unknown := base
	unknown.EventsSink = "sqs"
	assert.Error(t, unknown.Validate())

	redisNoURL := base
	redisNoURL.EventsSink = "redis"
	assert.Error(t, redisNoURL.Validate())
}
