package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type MockEventsProducer struct {
	mock.Mock
}

func (p *MockEventsProducer) ProduceCartEvent(
	ctx context.Context, e domain.CartEvent,
) error {
	args := p.Called(ctx, e)
	return args.Error(0)
}

func (p *MockEventsProducer) ProduceSearchEvent(
	ctx context.Context, e domain.SearchEvent,
) error {
	args := p.Called(ctx, e)
	return args.Error(0)
}

var errBroker = errors.New("broker unavailable")

func fastRetry() RelayOpt {
	return RelayRetryOpt(retry.RetryConfig{
		MaxAttempts: 3,
		Backoff:     retry.LinearBackoff(time.Millisecond),
	})
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event is not published")
	}
}

type relayFixture struct {
	ctx   context.Context
	cart  *CartStore
	auth  *Auth
	relay *EventRelay
}

func newRelayFixture(
	t *testing.T, producer *MockEventsProducer, opts ...RelayOpt,
) relayFixture {
	t.Helper()
	ctx := context.Background()
	kv := newMemKV()
	cart := NewCartStore(ctx, kv)
	auth := NewAuth(ctx, kv, 0)
	relay := NewEventRelay(producer, cart, auth, append([]RelayOpt{fastRetry()}, opts...)...)
	return relayFixture{ctx, cart, auth, relay}
}

func (f relayFixture) run(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithCancel(f.ctx)
	stopped := make(chan struct{})
	go func() {
		f.relay.Run(ctx)
		close(stopped)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
		f.relay.Close()
	})
}

func TestEventRelayCartEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("PublishesChangeWithUser", func(t *testing.T) {
		producer := new(MockEventsProducer)
		f := newRelayFixture(t, producer)
		_, err := f.auth.Login(f.ctx, "user@example.com", "password")
		require.NoError(t, err)

		done := make(chan struct{})
		producer.On("ProduceCartEvent", mock.Anything,
			mock.MatchedBy(func(e domain.CartEvent) bool {
				return e.UserID == "123" &&
					e.Action == domain.CartActionAdd &&
					e.ProductID == "1" && e.Size == "M" && e.Color == "Red" &&
					e.Quantity == 2 && e.TotalItems == 2 &&
					e.TotalPrice.Equal(price("59.98"))
			}),
		).Return(nil).Once().Run(func(mock.Arguments) { close(done) })

		f.run(t)
		require.NoError(t, f.cart.AddItem(f.ctx, testProduct("1", "29.99", "1"), 2, "M", "Red"))

		waitDone(t, done)
		producer.AssertExpectations(t)
	})

	t.Run("AnonymousUser", func(t *testing.T) {
		producer := new(MockEventsProducer)
		f := newRelayFixture(t, producer)

		done := make(chan struct{})
		producer.On("ProduceCartEvent", mock.Anything,
			mock.MatchedBy(func(e domain.CartEvent) bool {
				return e.UserID == "" && e.Action == domain.CartActionClear
			}),
		).Return(nil).Once().Run(func(mock.Arguments) { close(done) })

		f.run(t)
		f.cart.Clear(f.ctx)

		waitDone(t, done)
		producer.AssertExpectations(t)
	})

	t.Run("RetriesFailedPublish", func(t *testing.T) {
		producer := new(MockEventsProducer)
		f := newRelayFixture(t, producer)

		done := make(chan struct{})
		producer.On("ProduceCartEvent", mock.Anything, mock.Anything).
			Return(errBroker).Twice()
		producer.On("ProduceCartEvent", mock.Anything, mock.Anything).
			Return(nil).Once().Run(func(mock.Arguments) { close(done) })

		f.run(t)
		f.cart.Clear(f.ctx)

		waitDone(t, done)
		producer.AssertNumberOfCalls(t, "ProduceCartEvent", 3)
	})
}

func TestEventRelaySearchEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	producer := new(MockEventsProducer)
	f := newRelayFixture(t, producer)

	done := make(chan struct{})
	event := domain.SearchEvent{
		UserID:     "123",
		Query:      "jeans",
		Category:   "1",
		Sort:       domain.SortPriceAsc,
		Results:    1,
		OccurredAt: time.Now(),
	}
	producer.On("ProduceSearchEvent", mock.Anything, event).
		Return(nil).Once().Run(func(mock.Arguments) { close(done) })

	f.run(t)
	f.relay.SendSearchEvent(event)

	waitDone(t, done)
	producer.AssertExpectations(t)
}

func TestEventRelayQueue(t *testing.T) {
	t.Run("FullQueueDropsEvents", func(t *testing.T) {
		producer := new(MockEventsProducer)
		f := newRelayFixture(t, producer, RelayQueueSizeOpt(2))

		for range 5 {
			f.relay.SendSearchEvent(domain.SearchEvent{Query: "q"})
		}
		assert.Len(t, f.relay.queue, 2)
		f.relay.Close()
	})

	t.Run("CartNeverBlocks", func(t *testing.T) {
		producer := new(MockEventsProducer)
		f := newRelayFixture(t, producer, RelayQueueSizeOpt(1))

		p := testProduct("1", "29.99", "1")
		for range 10 {
			require.NoError(t, f.cart.AddItem(f.ctx, p, 1, "M", "Red"))
		}
		assert.Equal(t, 10, f.cart.TotalItems())
		assert.Len(t, f.relay.queue, 1)
		f.relay.Close()
	})

	t.Run("ClosedRelayIgnoresEvents", func(t *testing.T) {
		producer := new(MockEventsProducer)
		f := newRelayFixture(t, producer)
		f.relay.Close()

		require.NoError(t, f.cart.AddItem(f.ctx, testProduct("1", "29.99", "1"), 1, "M", "Red"))
		f.relay.SendSearchEvent(domain.SearchEvent{Query: "q"})

		assert.Empty(t, f.relay.queue)
	})
}
