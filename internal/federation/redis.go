package federation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"prism/internal/domain/models"
)

// RedisPublisher publishes retraction events to a Redis channel consumed
// by the federation dispatcher, which fans them out to the peers in the
// registry.
type RedisPublisher struct {
	client *redis.Client
	topic  string
	peers  *PeerRegistry
	logger *slog.Logger
}

// retractionEnvelope is the published wire format
type retractionEnvelope struct {
	Retraction *models.Retraction `json:"retraction"`
	Peers      []string           `json:"peers"`
}

// NewRedisPublisher connects to Redis and returns a publisher for the
// given channel.
func NewRedisPublisher(ctx context.Context, redisURL, topic string, peers *PeerRegistry, logger *slog.Logger) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("retraction publisher connected", "topic", topic, "peers", len(peers.Endpoints()))

	return &RedisPublisher{
		client: client,
		topic:  topic,
		peers:  peers,
		logger: logger,
	}, nil
}

// PublishRetraction publishes the retraction envelope and confirms the
// write before returning.
func (p *RedisPublisher) PublishRetraction(ctx context.Context, retraction *models.Retraction) error {
	envelope := retractionEnvelope{
		Retraction: retraction,
		Peers:      p.peers.Endpoints(),
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("encode retraction: %w", err)
	}

	if err := p.client.Publish(ctx, p.topic, payload).Err(); err != nil {
		return fmt.Errorf("publish retraction: %w", err)
	}

	p.logger.Info("retraction published",
		"photo_id", retraction.PhotoID,
		"topic", p.topic,
	)

	return nil
}

// Close releases the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
