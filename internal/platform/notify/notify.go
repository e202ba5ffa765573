// Package notify broadcasts ledger change events to live dashboard streams.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Channel is the Redis pub/sub channel carrying partition keys.
const Channel = "opname:ledger-changed"

// Hub fans a partition key out to every local subscriber that covers it.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan struct{}]func(string) bool
}

// NewHub creates an empty Hub. On its own it is the in-process notifier.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan struct{}]func(string) bool)}
}

// Publish signals local subscribers covering partitionKey.
func (h *Hub) Publish(_ context.Context, partitionKey string) error {
	h.broadcast(partitionKey)
	return nil
}

// Subscribe returns a signal channel that fires after a change in any
// partition accepted by covers (every partition when covers is nil).
// Signals coalesce: at most one is pending per subscriber. The channel is
// closed once ctx is done.
func (h *Hub) Subscribe(ctx context.Context, covers func(partitionKey string) bool) <-chan struct{} {
	if covers == nil {
		covers = func(string) bool { return true }
	}
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	h.subs[ch] = covers
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		close(ch)
		h.mu.Unlock()
	}()
	return ch
}

func (h *Hub) broadcast(partitionKey string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch, covers := range h.subs {
		if !covers(partitionKey) {
			continue
		}
		select {
		case ch <- struct{}{}:
		default:
			// Already signalled; the subscriber has not refreshed yet.
		}
	}
}

func (h *Hub) subscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// RedisNotifier publishes through Redis so that streams on every instance refresh.
type RedisNotifier struct {
	client *redis.Client
	hub    *Hub
	logger *slog.Logger
}

// NewRedisNotifier creates a RedisNotifier. Call Listen to start relaying.
func NewRedisNotifier(client *redis.Client, logger *slog.Logger) *RedisNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisNotifier{client: client, hub: NewHub(), logger: logger}
}

// Publish announces a change of partitionKey to every instance.
func (n *RedisNotifier) Publish(ctx context.Context, partitionKey string) error {
	return n.client.Publish(ctx, Channel, partitionKey).Err()
}

// Subscribe signals local subscribers of changes published by any instance.
func (n *RedisNotifier) Subscribe(ctx context.Context, covers func(partitionKey string) bool) <-chan struct{} {
	return n.hub.Subscribe(ctx, covers)
}

// Listen relays Redis messages to local subscribers until ctx is done.
// It returns once the subscription is confirmed.
func (n *RedisNotifier) Listen(ctx context.Context) error {
	pubsub := n.client.Subscribe(ctx, Channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return err
	}
	go func() {
		defer func() { _ = pubsub.Close() }()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					n.logger.Warn("ledger change subscription closed")
					return
				}
				if msg.Payload != "" {
					n.hub.broadcast(msg.Payload)
				}
			}
		}
	}()
	return nil
}
