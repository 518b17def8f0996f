package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"

	"voicemail-whisper/internal/app/model"
)

// Event announces that a clip changed status.
type Event struct {
	ClipID int64        `json:"clip_id"`
	Status model.Status `json:"status"`
	Stage  model.Stage  `json:"stage,omitempty"`
	Reason string       `json:"reason,omitempty"`
	At     time.Time    `json:"at"`
}

// Publisher delivers events to observers outside the process. Delivery is best
// effort; the persisted clip stays the source of truth.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// RedisPublisher publishes events on a pub/sub channel and keeps the latest status
// of each clip in a hash under keyPrefix+id.
type RedisPublisher struct {
	client    *redis.Client
	channel   string
	keyPrefix string
	ttl       time.Duration
}

func NewRedisPublisher(client *redis.Client, channel, keyPrefix string) *RedisPublisher {
	return &RedisPublisher{
		client:    client,
		channel:   channel,
		keyPrefix: keyPrefix,
		ttl:       24 * time.Hour,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	key := p.keyPrefix + strconv.FormatInt(e.ClipID, 10)
	pipe := p.client.TxPipeline()
	pipe.Publish(ctx, p.channel, payload)
	pipe.HSet(ctx, key, "status", string(e.Status), "updated_at", e.At.Format(time.RFC3339Nano))
	pipe.Expire(ctx, key, p.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis publish %s: %w", p.channel, err)
	}
	return nil
}

// LatestStatus reads the last published status of a clip.
func (p *RedisPublisher) LatestStatus(ctx context.Context, clipID int64) (model.Status, error) {
	key := p.keyPrefix + strconv.FormatInt(clipID, 10)
	val, err := p.client.HGet(ctx, key, "status").Result()
	if err != nil {
		return "", fmt.Errorf("redis HGET %s status: %w", key, err)
	}
	return model.Status(val), nil
}

// Close releases the redis connection pool.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
