package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// JobRecord is the poll-only progress record of a tracked async
// operation. Jobs run to completion or failure; there is no cancellation.
type JobRecord struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"` // pending, processing, completed, failed
	Progress  int       `json:"progress"`
	Message   string    `json:"message"`
	Result    string    `json:"result,omitempty"` // serialized result on completion
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Job tracking
func (c *Client) SetJob(jobID string, record *JobRecord, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal job record: %w", err)
	}

	return c.rdb.Set(ctx, "job:"+jobID, jsonData, ttl).Err()
}

func (c *Client) GetJob(jobID string) (*JobRecord, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "job:"+jobID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("job not found")
		}
		return nil, fmt.Errorf("failed to get job record: %w", err)
	}

	var record JobRecord
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job record: %w", err)
	}

	return &record, nil
}

// Settings cache (read-through in front of the settings table)
func (c *Client) SetCachedSetting(name string, value int, ttl time.Duration) error {
	ctx := context.Background()
	return c.rdb.Set(ctx, "setting:"+name, value, ttl).Err()
}

func (c *Client) GetCachedSetting(name string) (int, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "setting:"+name).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, fmt.Errorf("setting not cached")
		}
		return 0, fmt.Errorf("failed to get cached setting: %w", err)
	}
	return val, nil
}

func (c *Client) DeleteCachedSetting(name string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "setting:"+name).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
