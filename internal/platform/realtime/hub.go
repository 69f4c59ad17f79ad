package realtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Channel is the Redis pub/sub channel every RodMar instance shares.
const Channel = "rodmar:eventos"

// Handler receives every decoded event, local or remote.
type Handler func(ctx context.Context, ev Event)

// Hub bridges the Redis pub/sub push channel: mutations publish events
// through it, and a subscriber loop mirrors remote events into the same
// handlers (the invalidation coordinator) plus any connected SSE clients.
type Hub struct {
	rdb    *redis.Client
	logger *slog.Logger

	// Reconnect policy for the subscriber loop: fixed delay, bounded
	// attempts. Events missed while disconnected are not replayed.
	reconnectDelay time.Duration
	maxReconnects  int

	mu          sync.Mutex
	handlers    []Handler
	subscribers map[chan Event]struct{}
}

// NewHub creates a hub over the given Redis client.
func NewHub(rdb *redis.Client, logger *slog.Logger, reconnectDelay time.Duration, maxReconnects int) *Hub {
	return &Hub{
		rdb:            rdb,
		logger:         logger,
		reconnectDelay: reconnectDelay,
		maxReconnects:  maxReconnects,
		subscribers:    make(map[chan Event]struct{}),
	}
}

// OnEvent registers a handler invoked for every event received on the
// channel. Must be called before Run.
func (h *Hub) OnEvent(fn Handler) {
	h.mu.Lock()
	h.handlers = append(h.handlers, fn)
	h.mu.Unlock()
}

// Publish encodes and publishes an event on the shared channel. Other
// instances (and other tabs via SSE) receive it through their own hubs;
// the publishing instance also sees its own message, which is harmless
// because invalidation is idempotent.
func (h *Hub) Publish(ctx context.Context, ev Event) error {
	data, err := Encode(ev)
	if err != nil {
		return err
	}
	return h.rdb.Publish(ctx, Channel, data).Err()
}

// Subscribe registers an SSE client. The returned cancel func must be called
// on client disconnect. Slow clients are skipped, not buffered indefinitely.
//
// The channel is never closed: dispatch snapshots the subscriber set outside
// the lock, so a close here could race an in-flight send. Cancelled clients
// just stop appearing in snapshots; their exit path is the request context.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subscribers, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

// Run consumes the pub/sub channel until ctx is done, reconnecting with a
// fixed delay up to maxReconnects consecutive failures. Intended to run in
// its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	failures := 0
	for {
		if ctx.Err() != nil {
			return
		}

		err := h.consume(ctx)
		if ctx.Err() != nil {
			return
		}
		failures++
		if h.maxReconnects > 0 && failures > h.maxReconnects {
			h.logger.Error("Push channel gave up reconnecting",
				slog.Int("attempts", failures),
				slog.String("error", err.Error()))
			return
		}
		h.logger.Warn("Push channel disconnected, reconnecting",
			slog.Int("attempt", failures),
			slog.Duration("delay", h.reconnectDelay),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return
		case <-time.After(h.reconnectDelay):
		}
	}
}

// consume subscribes and dispatches messages until the connection drops.
func (h *Hub) consume(ctx context.Context) error {
	sub := h.rdb.Subscribe(ctx, Channel)
	defer sub.Close()

	// Force the subscription round-trip so connection errors surface here.
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return context.Canceled
			}
			ev, err := Decode([]byte(msg.Payload))
			if err != nil {
				// Unknown events are logged and dropped, never fatal.
				h.logger.Warn("Dropping undecodable push event", slog.String("error", err.Error()))
				continue
			}
			h.dispatch(ctx, ev)
		}
	}
}

func (h *Hub) dispatch(ctx context.Context, ev Event) {
	h.mu.Lock()
	handlers := make([]Handler, len(h.handlers))
	copy(handlers, h.handlers)
	subs := make([]chan Event, 0, len(h.subscribers))
	for ch := range h.subscribers {
		subs = append(subs, ch)
	}
	h.mu.Unlock()

	for _, fn := range handlers {
		fn(ctx, ev)
	}
	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
			// Client not draining; drop rather than block the loop.
		}
	}
}
