package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
)

const defaultRelayQueueSize = 256

var _ port.EventRelay = (*EventRelay)(nil)

type RelayOpt func(*EventRelay)

func RelayQueueSizeOpt(n int) RelayOpt {
	return func(r *EventRelay) {
		if n > 0 {
			r.queue = make(chan any, n)
		}
	}
}

func RelayRetryOpt(c retry.RetryConfig) RelayOpt {
	return func(r *EventRelay) {
		r.retryCfg = c
	}
}

// An EventRelay forwards cart changes and search events to the
// events producer on its own goroutine.
//
// Events are dropped when the queue is full, so a slow broker never
// blocks a cart operation.
type EventRelay struct {
	producer    port.EventsProducer
	auth        port.Authenticator
	queue       chan any
	retryCfg    retry.RetryConfig
	unsubscribe func()

	mu     sync.RWMutex
	closed bool
}

func NewEventRelay(
	producer port.EventsProducer,
	cart port.CartStore,
	auth port.Authenticator,
	opts ...RelayOpt,
) *EventRelay {
	r := &EventRelay{
		producer: producer,
		auth:     auth,
		queue:    make(chan any, defaultRelayQueueSize),
		retryCfg: retry.RetryConfig{
			MaxAttempts: 3,
			Backoff:     retry.ExponentialBackoff(100 * time.Millisecond),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.unsubscribe = cart.Subscribe(r.onCartChange)
	return r
}

func (r *EventRelay) onCartChange(change domain.CartChange) {
	var userID string
	if u, ok := r.auth.CurrentUser(); ok {
		userID = u.ID
	}

	r.enqueue(domain.CartEvent{
		UserID:     userID,
		Action:     change.Action,
		ProductID:  change.ProductID,
		Size:       change.Size,
		Color:      change.Color,
		Quantity:   change.Quantity,
		TotalItems: change.Cart.TotalItems(),
		TotalPrice: change.Cart.TotalPrice(),
		OccurredAt: time.Now(),
	})
}

func (r *EventRelay) SendSearchEvent(e domain.SearchEvent) {
	r.enqueue(e)
}

func (r *EventRelay) enqueue(v any) {
	const op = "EventRelay.enqueue"

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}

	select {
	case r.queue <- v:
	default:
		slog.Warn("queue is full, event dropped", "op", op)
	}
}

// Run publishes queued events until ctx is done.
func (r *EventRelay) Run(ctx context.Context) {
	const op = "EventRelay.Run"
	log := slog.With("op", op)

	log.Info("running")
	for {
		select {
		case <-ctx.Done():
			log.Info("stopped")
			return
		case v := <-r.queue:
			r.publish(ctx, v)
		}
	}
}

// Close stops accepting events.
func (r *EventRelay) Close() {
	const op = "EventRelay.Close"
	log := slog.With("op", op)

	log.Info("closing relay...")
	r.unsubscribe()

	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	log.Info("relay is closed", "dropped", len(r.queue))
}

func (r *EventRelay) publish(ctx context.Context, v any) {
	const op = "EventRelay.publish"
	log := slog.With("op", op)

	var fn func() error
	switch e := v.(type) {
	case domain.CartEvent:
		fn = func() error { return r.producer.ProduceCartEvent(ctx, e) }
	case domain.SearchEvent:
		fn = func() error { return r.producer.ProduceSearchEvent(ctx, e) }
	default:
		log.Error("unexpected event type", "type", fmt.Sprintf("%T", v))
		return
	}

	err := retry.Do(ctx, r.retryCfg, fn)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("failed to publish event", "err", err)
	}
}
