package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/placementcell/go-talent/internal/domain"
)

// Publisher pushes sync requests to the Redis queue
type Publisher struct {
	client    *redis.Client
	queueName string
}

// NewPublisher creates a new queue publisher
func NewPublisher(client *redis.Client, queueName string) *Publisher {
	if queueName == "" {
		queueName = "profiles:sync"
	}
	return &Publisher{
		client:    client,
		queueName: queueName,
	}
}

// Publish pushes a single sync request to the queue
func (p *Publisher) Publish(ctx context.Context, req *domain.SyncRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	if err := p.client.LPush(ctx, p.queueName, data).Err(); err != nil {
		return fmt.Errorf("lpush: %w", err)
	}

	return nil
}

// PublishBatch pushes multiple sync requests to the queue
func (p *Publisher) PublishBatch(ctx context.Context, reqs []*domain.SyncRequest) error {
	if len(reqs) == 0 {
		return nil
	}

	pipe := p.client.Pipeline()
	for _, req := range reqs {
		data, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		pipe.LPush(ctx, p.queueName, data)
	}

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("pipeline exec: %w", err)
	}

	return nil
}

// QueueLength returns the current queue length
func (p *Publisher) QueueLength(ctx context.Context) (int64, error) {
	return p.client.LLen(ctx, p.queueName).Result()
}
