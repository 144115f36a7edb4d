package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/placementcell/go-talent/internal/domain"
)

// Consumer consumes sync requests from the Redis queue
type Consumer struct {
	client    *redis.Client
	queueName string
	timeout   time.Duration
}

// NewConsumer creates a new queue consumer
func NewConsumer(client *redis.Client, queueName string, timeout time.Duration) *Consumer {
	if queueName == "" {
		queueName = "profiles:sync"
	}
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Consumer{
		client:    client,
		queueName: queueName,
		timeout:   timeout,
	}
}

// Consume blocks and waits for a sync request from the queue
// Returns nil, nil if timeout occurs with no request
func (c *Consumer) Consume(ctx context.Context) (*domain.SyncRequest, error) {
	result, err := c.client.BRPop(ctx, c.timeout, c.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Timeout, nothing queued
		}
		return nil, fmt.Errorf("brpop: %w", err)
	}

	if len(result) < 2 {
		return nil, nil
	}

	req, err := decodeRequest([]byte(result[1]))
	if err != nil {
		return nil, fmt.Errorf("unmarshal request: %w", err)
	}

	return req, nil
}

// ConsumeBatch consumes up to maxBatch requests from the queue.
// Uses BRPOP to block-wait for the first item (prevents CPU spinning),
// then non-blocking RPOP to fill the rest of the batch.
func (c *Consumer) ConsumeBatch(ctx context.Context, maxBatch int) ([]*domain.SyncRequest, error) {
	reqs := make([]*domain.SyncRequest, 0, maxBatch)

	result, err := c.client.BRPop(ctx, c.timeout, c.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return reqs, nil // Timeout, nothing queued
		}
		return nil, fmt.Errorf("brpop: %w", err)
	}

	if len(result) >= 2 {
		req, err := decodeRequest([]byte(result[1]))
		if err != nil {
			log.Printf("Skipping malformed sync request: %v", err)
		} else {
			reqs = append(reqs, req)
		}
	}

	for i := 1; i < maxBatch; i++ {
		result, err := c.client.RPop(ctx, c.queueName).Result()
		if err != nil {
			if err == redis.Nil {
				break // Queue drained
			}
			return reqs, fmt.Errorf("rpop: %w", err)
		}

		req, err := decodeRequest([]byte(result))
		if err != nil {
			log.Printf("Skipping malformed sync request: %v", err)
			continue
		}

		reqs = append(reqs, req)
	}

	return reqs, nil
}

func decodeRequest(data []byte) (*domain.SyncRequest, error) {
	var req domain.SyncRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
