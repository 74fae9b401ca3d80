package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/muhammadolammi/atsworker/internal/workflow"
)

var retryBaseDelay = 500 * time.Millisecond

// retry retries a function up to `attempts` times with linear backoff
func retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i < attempts-1 {
			time.Sleep(retryBaseDelay * time.Duration(i+1))
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// ackAction is what to do with a delivery after handling it.
type ackAction int

const (
	ack ackAction = iota
	requeue
	// drop acks the message after the task has been marked failed.
	drop
)

// settle decides the fate of a message. Database failures are requeued once;
// a message that fails again after redelivery is dropped so it cannot loop.
func settle(err error, redelivered bool) ackAction {
	switch {
	case err == nil:
		return ack
	case workflow.Retryable(err) && !redelivered:
		return requeue
	default:
		return drop
	}
}

// handleDelivery runs the workflow for one queue message.
func (wc *WorkerConfig) handleDelivery(ctx context.Context, log *zap.Logger, msg amqp.Delivery) ackAction {
	req := workflow.Request{}
	if err := json.Unmarshal(msg.Body, &req); err != nil {
		log.Error("error unmarshalling message body", zap.Error(err))
		return drop
	}
	log = log.With(zap.String("task_id", req.TaskID))
	log.Debug("processing task")

	res, _, err := wc.Workflow.Process(ctx, req)
	action := settle(err, msg.Redelivered)
	switch action {
	case ack:
		log.Info("task done", zap.Float64("score", res.Score), zap.String("status", string(res.Status)))
	case requeue:
		log.Warn("task failed, requeueing", zap.Error(err))
	case drop:
		log.Error("task failed", zap.Error(err))
		if !errors.Is(err, workflow.ErrInvalidRequest) {
			if ferr := wc.Workflow.Fail(ctx, req); ferr != nil {
				log.Error("failed to mark task failed", zap.Error(ferr))
			}
		}
	}
	return action
}

func (wc *WorkerConfig) worker(ctx context.Context, id int) error {
	log := wc.Logger.With(zap.Int("worker", id+1))

	ch, err := wc.RabbitConn.Channel()
	if err != nil {
		return fmt.Errorf("error connecting to rabbitmq channel: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		wc.Config.Queue, // queue name
		true,            // durable (survives broker restarts)
		false,           // auto-delete when unused
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}

	msgs, err := ch.Consume(
		wc.Config.Queue, // queue name
		"",              // consumer tag
		false,           // auto-ack
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		return fmt.Errorf("error consuming rabbitmq message: %w", err)
	}

	log.Info("worker started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			var ackErr error
			switch wc.handleDelivery(ctx, log, msg) {
			case ack, drop:
				ackErr = msg.Ack(false)
			case requeue:
				ackErr = msg.Nack(false, true)
			}
			if ackErr != nil {
				log.Error("failed to settle message", zap.Error(ackErr))
			}
		}
	}
}

// StartConsumerWorkerPool runs numWorkers consumers until ctx is cancelled
// or one of them fails.
func (wc *WorkerConfig) StartConsumerWorkerPool(ctx context.Context, numWorkers int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errs := make([]error, numWorkers)
	for i := range numWorkers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := wc.worker(ctx, i); err != nil {
				errs[i] = fmt.Errorf("worker %d: %w", i+1, err)
				cancel()
			}
		}(i)
	}
	wg.Wait() // block until all workers finish
	return errors.Join(errs...)
}
