package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"bid-reconciler/internal/models"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel won bids are announced on
const DefaultChannel = "bids.won"

// redisPublisher is the subset of redis.UniversalClient used for notifications
type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisNotifier publishes won-bid messages on a Redis pub/sub channel
type RedisNotifier struct {
	client  redisPublisher
	channel string
}

// NewRedisNotifier creates a notifier publishing on channel
func NewRedisNotifier(client redisPublisher, channel string) *RedisNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisNotifier{client: client, channel: channel}
}

// Notify publishes the won-bid message
func (n *RedisNotifier) Notify(ctx context.Context, company models.Company, bid models.Bid) error {
	payload, err := json.Marshal(NewMessage(company, bid))
	if err != nil {
		return fmt.Errorf("notify: marshal message: %w", err)
	}
	if err := n.client.Publish(ctx, n.channel, string(payload)).Err(); err != nil {
		return fmt.Errorf("notify: publish to %s: %w", n.channel, err)
	}
	return nil
}
