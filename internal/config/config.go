// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/muhammadolammi/atsworker/internal/storage"
)

const (
	BackendAMQP  = "amqp"
	BackendRedis = "redis"
)

type Config struct {
	DBURL         string
	RabbitMQURL   string
	RedisURL      string
	EventsBackend string
	Exchange      string
	Queue         string
	R2            storage.R2Config
	Threshold     int
	Workers       int
	HTTPAddr      string
	LogJSON       bool
	Debug         bool
}

var keys = []string{
	"DB_URL", "RABBITMQ_URL", "REDIS_URL", "EVENTS_BACKEND", "EVENTS_EXCHANGE",
	"TASK_QUEUE", "R2_ACCOUNT_ID", "R2_BUCKET", "R2_ACCESS_KEY", "R2_SECRET_KEY",
	"ATS_THRESHOLD", "WORKERS", "HTTP_ADDR", "LOG_JSON", "DEBUG",
}

// Load reads .env (if present) and the environment into a Config with
// defaults applied.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper builds a Config from v, binding every key to its environment
// variable. Values already set on v take precedence over the environment.
func FromViper(v *viper.Viper) (*Config, error) {
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, err
		}
	}
	v.SetDefault("ATS_THRESHOLD", 90)
	v.SetDefault("WORKERS", 3)
	v.SetDefault("EVENTS_BACKEND", BackendAMQP)
	v.SetDefault("EVENTS_EXCHANGE", "ats_events")
	v.SetDefault("TASK_QUEUE", "ats_tasks")
	v.SetDefault("HTTP_ADDR", ":8001")

	cfg := &Config{
		DBURL:         v.GetString("DB_URL"),
		RabbitMQURL:   v.GetString("RABBITMQ_URL"),
		RedisURL:      v.GetString("REDIS_URL"),
		EventsBackend: strings.ToLower(v.GetString("EVENTS_BACKEND")),
		Exchange:      v.GetString("EVENTS_EXCHANGE"),
		Queue:         v.GetString("TASK_QUEUE"),
		R2: storage.R2Config{
			AccountID: v.GetString("R2_ACCOUNT_ID"),
			Bucket:    v.GetString("R2_BUCKET"),
			AccessKey: v.GetString("R2_ACCESS_KEY"),
			SecretKey: v.GetString("R2_SECRET_KEY"),
		},
		Threshold: v.GetInt("ATS_THRESHOLD"),
		Workers:   v.GetInt("WORKERS"),
		HTTPAddr:  v.GetString("HTTP_ADDR"),
		LogJSON:   v.GetBool("LOG_JSON"),
		Debug:     v.GetBool("DEBUG"),
	}
	if cfg.Threshold < 0 || cfg.Threshold > 100 {
		return nil, fmt.Errorf("ATS_THRESHOLD must be between 0 and 100, got %d", cfg.Threshold)
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("WORKERS must be at least 1, got %d", cfg.Workers)
	}
	return cfg, nil
}

// RequireDB checks the settings needed to reach Postgres.
func (c *Config) RequireDB() error {
	if c.DBURL == "" {
		return errors.New("empty DB_URL in environment")
	}
	return nil
}

// RequireTasks checks everything needed to process scoring tasks: database,
// resume storage and the configured event transport.
func (c *Config) RequireTasks() error {
	var errs []error
	if err := c.RequireDB(); err != nil {
		errs = append(errs, err)
	}
	for name, val := range map[string]string{
		"R2_ACCOUNT_ID": c.R2.AccountID,
		"R2_BUCKET":     c.R2.Bucket,
		"R2_ACCESS_KEY": c.R2.AccessKey,
		"R2_SECRET_KEY": c.R2.SecretKey,
	} {
		if val == "" {
			errs = append(errs, fmt.Errorf("empty %s in environment", name))
		}
	}
	switch c.EventsBackend {
	case BackendAMQP:
		if c.RabbitMQURL == "" {
			errs = append(errs, errors.New("empty RABBITMQ_URL in environment"))
		}
	case BackendRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("empty REDIS_URL in environment"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown EVENTS_BACKEND %q", c.EventsBackend))
	}
	return errors.Join(errs...)
}

// RequireWorker additionally needs the task queue broker.
func (c *Config) RequireWorker() error {
	err := c.RequireTasks()
	if c.RabbitMQURL == "" && c.EventsBackend != BackendAMQP {
		err = errors.Join(err, errors.New("empty RABBITMQ_URL in environment"))
	}
	return err
}
