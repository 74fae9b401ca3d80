package main

import (
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/muhammadolammi/atsworker/internal/ats"
	"github.com/muhammadolammi/atsworker/internal/config"
	"github.com/muhammadolammi/atsworker/internal/database"
	"github.com/muhammadolammi/atsworker/internal/storage"
	"github.com/muhammadolammi/atsworker/internal/workflow"
)

// WorkerConfig holds the shared clients used by every worker.
type WorkerConfig struct {
	Config     *config.Config
	Logger     *zap.Logger
	DB         *database.Store
	Bucket     *storage.Bucket
	Engine     *ats.Engine
	Workflow   *workflow.Service
	RabbitConn *amqp.Connection
	closers    []func() error
}

// Close releases everything opened by newWorkerConfig, last opened first.
func (wc *WorkerConfig) Close() {
	for i := len(wc.closers) - 1; i >= 0; i-- {
		if err := wc.closers[i](); err != nil {
			wc.Logger.Warn("close failed", zap.Error(err))
		}
	}
}
