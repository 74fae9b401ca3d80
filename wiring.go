package main

import (
	"context"
	"fmt"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/muhammadolammi/atsworker/internal/ats"
	"github.com/muhammadolammi/atsworker/internal/config"
	"github.com/muhammadolammi/atsworker/internal/database"
	"github.com/muhammadolammi/atsworker/internal/events"
	"github.com/muhammadolammi/atsworker/internal/storage"
	"github.com/muhammadolammi/atsworker/internal/workflow"
)

const downloadAttempts = 3

// newWorkerConfig connects to every backing service named in cfg. On error
// anything already opened is closed.
func newWorkerConfig(ctx context.Context, cfg *config.Config, log *zap.Logger) (_ *WorkerConfig, err error) {
	wc := &WorkerConfig{Config: cfg, Logger: log}
	defer func() {
		if err != nil {
			wc.Close()
		}
	}()

	wc.DB, err = database.Connect(ctx, cfg.DBURL)
	if err != nil {
		return nil, err
	}
	wc.closers = append(wc.closers, wc.DB.Close)

	wc.Bucket, err = storage.NewR2Bucket(ctx, cfg.R2)
	if err != nil {
		return nil, fmt.Errorf("error creating r2 client: %w", err)
	}

	wc.Engine, err = ats.NewEngine(cfg.Threshold)
	if err != nil {
		return nil, err
	}

	if cfg.RabbitMQURL != "" {
		wc.RabbitConn, err = amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			return nil, fmt.Errorf("error connecting to rabbitmq: %w", err)
		}
		wc.closers = append(wc.closers, wc.RabbitConn.Close)
	}

	var publisher workflow.Publisher
	switch cfg.EventsBackend {
	case config.BackendRedis:
		rp, err := events.NewRedisPublisher(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("error connecting to redis: %w", err)
		}
		wc.closers = append(wc.closers, rp.Close)
		publisher = rp
	default:
		ap, err := events.NewAMQPPublisher(wc.RabbitConn, cfg.Exchange)
		if err != nil {
			return nil, err
		}
		publisher = ap
	}

	resumes := bucketResumes{bucket: wc.Bucket, attempts: downloadAttempts}
	wc.Workflow = workflow.NewService(wc.DB, resumes, wc.Engine, publisher, log)
	return wc, nil
}
