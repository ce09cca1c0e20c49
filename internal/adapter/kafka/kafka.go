package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var ErrTooFewOpts = errors.New("too few options")

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl            ProducerClient
	cartTopic     string
	cartEncoder   Encoder
	searchTopic   string
	searchEncoder Encoder
}

func (o *producerOpts) apply(opts ...ProducerOpt) error {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

func (o *producerOpts) complete() bool {
	return o.cl != nil && o.cartEncoder != nil && o.searchEncoder != nil
}

// ProducerClientOpt creates [kgo.Client] and pings the cluster.
//
// tlsCfg is optional.
func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, tlsCfg *tls.Config,
) ProducerOpt {
	return func(opts *producerOpts) error {
		kopts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.RequiredAcks(kgo.AllISRAcks()),
		}
		if tlsCfg != nil {
			kopts = append(kopts, kgo.DialTLSConfig(tlsCfg))
		}

		cl, err := kgo.NewClient(kopts...)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			cl.Close()
			return err
		}
		opts.cl = cl
		return nil
	}
}

// ProducerTestClientOpt injects a ready client.
func ProducerTestClientOpt(cl ProducerClient) ProducerOpt {
	return func(opts *producerOpts) error {
		if cl == nil {
			return errors.New("producer client is nil")
		}
		opts.cl = cl
		return nil
	}
}

func CartEventsOpt(topic string, encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if topic == "" {
			return errors.New("cart events topic is empty string")
		}
		if encoder == nil {
			return errors.New("cart events encoder is nil")
		}
		opts.cartTopic = topic
		opts.cartEncoder = encoder
		return nil
	}
}

func SearchEventsOpt(topic string, encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if topic == "" {
			return errors.New("search events topic is empty string")
		}
		if encoder == nil {
			return errors.New("search events encoder is nil")
		}
		opts.searchTopic = topic
		opts.searchEncoder = encoder
		return nil
	}
}

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func cartEventToSchemaV1(v domain.CartEvent) (s schema.CartEventV1) {
	s.UserID = v.UserID
	s.Action = string(v.Action)
	s.ProductID = v.ProductID
	s.Size = v.Size
	s.Color = v.Color
	s.Quantity = int64(v.Quantity)
	s.TotalItems = int64(v.TotalItems)
	s.TotalPrice = v.TotalPrice.StringFixed(2)
	s.OccurredAt = v.OccurredAt.UTC()
	return
}

func searchEventToSchemaV1(v domain.SearchEvent) (s schema.SearchEventV1) {
	s.UserID = v.UserID
	s.Query = v.Query
	s.Category = v.Category
	s.Sort = string(v.Sort)
	s.Results = int64(v.Results)
	s.OccurredAt = v.OccurredAt.UTC()
	return
}
