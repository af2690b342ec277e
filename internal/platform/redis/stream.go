package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultStreamMaxLen = 10000

// StreamPublisher appends events to a redis stream consumed by the chat bot.
type StreamPublisher struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

func NewStreamPublisher(client redis.Cmdable, stream string) *StreamPublisher {
	return &StreamPublisher{client: client, stream: stream, maxLen: defaultStreamMaxLen}
}

// Client returns the underlying redis client.
func (p *StreamPublisher) Client() redis.Cmdable {
	return p.client
}

// Publish adds an entry with the given type and fields and returns its id.
// The stream is trimmed approximately to maxLen entries.
func (p *StreamPublisher) Publish(ctx context.Context, eventType string, fields map[string]interface{}) (string, error) {
	values := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		values[k] = v
	}
	values["type"] = eventType

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: values,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to publish %s to %s: %w", eventType, p.stream, err)
	}
	return id, nil
}
