package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/muhammadolammi/atsworker/internal/workflow"
)

// RedisPublisher publishes decisions on Redis pub/sub channels named after
// the decision topic.
type RedisPublisher struct {
	client redis.UniversalClient
}

// NewRedisPublisher connects using a redis:// URL.
func NewRedisPublisher(url string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return &RedisPublisher{client: redis.NewClient(opts)}, nil
}

// NewRedisPublisherWithClient reuses an existing client.
func NewRedisPublisherWithClient(client redis.UniversalClient) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, d workflow.Decision) error {
	body, err := Payload(d)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, d.Topic(), body).Err(); err != nil {
		return fmt.Errorf("publishing to %s: %w", d.Topic(), err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
