package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.Threshold)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, BackendAMQP, cfg.EventsBackend)
	assert.Equal(t, "ats_events", cfg.Exchange)
	assert.Equal(t, "ats_tasks", cfg.Queue)
	assert.Equal(t, ":8001", cfg.HTTPAddr)
}

func TestFromViper_Environment(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/ats")
	t.Setenv("ATS_THRESHOLD", "85")
	t.Setenv("WORKERS", "5")
	t.Setenv("EVENTS_BACKEND", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("R2_BUCKET", "cvs")
	t.Setenv("LOG_JSON", "true")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/ats", cfg.DBURL)
	assert.Equal(t, 85, cfg.Threshold)
	assert.Equal(t, 5, cfg.Workers)
	assert.Equal(t, BackendRedis, cfg.EventsBackend)
	assert.Equal(t, "cvs", cfg.R2.Bucket)
	assert.True(t, cfg.LogJSON)
}

func TestFromViper_RejectsBadValues(t *testing.T) {
	t.Setenv("ATS_THRESHOLD", "120")
	_, err := FromViper(viper.New())
	assert.Error(t, err)

	t.Setenv("ATS_THRESHOLD", "90")
	t.Setenv("WORKERS", "0")
	_, err = FromViper(viper.New())
	assert.Error(t, err)
}

func TestRequire(t *testing.T) {
	cfg := &Config{EventsBackend: BackendAMQP}
	assert.ErrorContains(t, cfg.RequireDB(), "DB_URL")

	err := cfg.RequireTasks()
	assert.ErrorContains(t, err, "DB_URL")
	assert.ErrorContains(t, err, "R2_BUCKET")
	assert.ErrorContains(t, err, "RABBITMQ_URL")

	cfg = &Config{
		DBURL:         "postgres://x",
		RedisURL:      "redis://x",
		EventsBackend: BackendRedis,
	}
	cfg.R2.AccountID, cfg.R2.Bucket, cfg.R2.AccessKey, cfg.R2.SecretKey = "a", "b", "c", "d"
	assert.NoError(t, cfg.RequireTasks())
	assert.ErrorContains(t, cfg.RequireWorker(), "RABBITMQ_URL")

	cfg.EventsBackend = "kafka"
	assert.ErrorContains(t, cfg.RequireTasks(), "kafka")
}
