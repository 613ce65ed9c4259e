package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/lostfound-backend/internal/domain"
)

// LocalPublisher delivers to connections held by this instance.
type LocalPublisher interface {
	Publish(ctx context.Context, userID uuid.UUID, n domain.Notification) (int, error)
}

type envelope struct {
	UserID       uuid.UUID           `json:"userId"`
	Notification domain.Notification `json:"notification"`
}

// Relay fans notifications out through a pub/sub channel so that every
// instance delivers to its own connections.
type Relay struct {
	client  *redis.Client
	channel string
	local   LocalPublisher
	log     *slog.Logger
}

// NewRelay creates a relay on the given channel.
func NewRelay(client *redis.Client, channel string, local LocalPublisher, log *slog.Logger) *Relay {
	return &Relay{
		client:  client,
		channel: channel,
		local:   local,
		log:     log.With("component", "redis_relay"),
	}
}

// Publish sends the notification to the channel and returns the number of
// instances subscribed to it.
func (r *Relay) Publish(ctx context.Context, userID uuid.UUID, n domain.Notification) (int, error) {
	payload, err := json.Marshal(envelope{UserID: userID, Notification: n})
	if err != nil {
		return 0, fmt.Errorf("encode relay message: %w", err)
	}
	receivers, err := r.client.Publish(ctx, r.channel, payload).Result()
	if err != nil {
		return 0, fmt.Errorf("redis publish: %w", err)
	}
	return int(receivers), nil
}

// Run subscribes to the channel and hands every message to the local
// publisher until ctx is done.
func (r *Relay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	// Wait for the subscription confirmation so that publishes issued after
	// Run has started are not lost.
	if _, err := sub.Receive(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("redis subscribe: %w", err)
	}
	r.log.InfoContext(ctx, "redis relay subscribed", slog.String("channel", r.channel))

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			r.handle(ctx, msg.Payload)
		}
	}
}

func (r *Relay) handle(ctx context.Context, payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		r.log.WarnContext(ctx, "malformed relay message", slog.String("error", err.Error()))
		return
	}
	if _, err := r.local.Publish(ctx, env.UserID, env.Notification); err != nil {
		r.log.ErrorContext(ctx, "local publish failed",
			slog.String("user_id", env.UserID.String()),
			slog.String("error", err.Error()),
		)
	}
}
