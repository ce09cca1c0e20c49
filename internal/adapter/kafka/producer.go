package kafka

import (
	"context"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	_ port.EventsProducer = (*EventsProducer)(nil)
	_ port.EventsProducer = (*NopEventsProducer)(nil)
)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// An EventsProducer produces storefront analytics events,
// keyed by user id.
type EventsProducer struct {
	producer      producer
	opPrefix      string
	cartTopic     string
	cartEncoder   Encoder
	searchTopic   string
	searchEncoder Encoder
}

func NewEventsProducer(opts ...ProducerOpt) (EventsProducer, error) {
	const op = "NewEventsProducer"

	var options producerOpts
	if err := options.apply(opts...); err != nil {
		return EventsProducer{}, opErr(err, op)
	}
	if !options.complete() {
		return EventsProducer{}, opErr(ErrTooFewOpts, op)
	}

	opPrefix := "EventsProducer"
	return EventsProducer{
		producer:      producer{opPrefix: opPrefix, cl: options.cl},
		opPrefix:      opPrefix,
		cartTopic:     options.cartTopic,
		cartEncoder:   options.cartEncoder,
		searchTopic:   options.searchTopic,
		searchEncoder: options.searchEncoder,
	}, nil
}

func (p EventsProducer) Close() {
	p.producer.close()
}

func (p EventsProducer) ProduceCartEvent(
	ctx context.Context, v domain.CartEvent,
) error {
	const op = "ProduceCartEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	b, err := p.cartEncoder.Encode(cartEventToSchemaV1(v))
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r := p.createRecord(p.cartTopic, v.UserID, b)
	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

func (p EventsProducer) ProduceSearchEvent(
	ctx context.Context, v domain.SearchEvent,
) error {
	const op = "ProduceSearchEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	b, err := p.searchEncoder.Encode(searchEventToSchemaV1(v))
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r := p.createRecord(p.searchTopic, v.UserID, b)
	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// createRecord leaves key nil for anonymous shoppers,
// so their events are spread over partitions.
func (EventsProducer) createRecord(topic, userID string, v []byte) *kgo.Record {
	r := &kgo.Record{Topic: topic, Value: v}
	if userID != "" {
		r.Key = []byte(userID)
	}
	return r
}

// A NopEventsProducer discards events, used when no broker is configured.
type NopEventsProducer struct{}

func (NopEventsProducer) ProduceCartEvent(
	ctx context.Context, v domain.CartEvent,
) error {
	slog.DebugContext(ctx, "cart event discarded",
		"op", "NopEventsProducer.ProduceCartEvent", "action", v.Action)
	return nil
}

func (NopEventsProducer) ProduceSearchEvent(
	ctx context.Context, v domain.SearchEvent,
) error {
	slog.DebugContext(ctx, "search event discarded",
		"op", "NopEventsProducer.ProduceSearchEvent", "query", v.Query)
	return nil
}

func (NopEventsProducer) Close() {}
