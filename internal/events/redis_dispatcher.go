package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// redisDispatcher pushes events onto a Redis list and consumes them in
// a background loop. Delivery is at-least-once; handlers must tolerate
// redelivery.
type redisDispatcher struct {
	client *redis.Client
	queue  string
	logger *zap.Logger

	mu        sync.RWMutex
	listeners map[EventType][]EventHandler
}

// NewRedisDispatcher creates a queue-backed dispatcher. Run must be
// started for subscribed handlers to receive anything.
func NewRedisDispatcher(client *redis.Client, queue string, logger *zap.Logger) *redisDispatcher {
	return &redisDispatcher{
		client:    client,
		queue:     queue,
		logger:    logger,
		listeners: make(map[EventType][]EventHandler),
	}
}

var _ Dispatcher = (*redisDispatcher)(nil)

// Publish enqueues the event. Callers publish after their transaction
// commits, so a queued event always refers to persisted state.
func (d *redisDispatcher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return d.client.LPush(ctx, d.queue, data).Err()
}

// Subscribe registers a handler for the given event type.
func (d *redisDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}

// Run consumes the queue until ctx is cancelled. Malformed payloads are
// logged and dropped rather than re-queued.
func (d *redisDispatcher) Run(ctx context.Context) {
	for {
		result, err := d.client.BRPop(ctx, 5*time.Second, d.queue).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			if !errors.Is(err, redis.Nil) {
				d.logger.Warn("event queue pop failed", zap.Error(err))
			}
			continue
		}
		// BRPop returns [key, value].
		if len(result) < 2 {
			continue
		}
		event, err := DecodeEvent([]byte(result[1]))
		if err != nil {
			d.logger.Warn("dropping undecodable event", zap.Error(err))
			continue
		}
		d.dispatch(ctx, event)
	}
}

func (d *redisDispatcher) dispatch(ctx context.Context, event Event) {
	d.mu.RLock()
	handlers := append([]EventHandler{}, d.listeners[event.Type]...)
	d.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			d.logger.Warn("event handler failed",
				zap.String("event_type", string(event.Type)),
				zap.String("ticket_id", event.TicketID),
				zap.Error(err))
		}
	}
}
