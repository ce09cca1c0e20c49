package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamba/avro/v2"
	"github.com/twmb/franz-go/pkg/sr"
)

var ErrTooFewOpts = errors.New("too few options")

// A Serde encodes values in the registry wire format: the schema id
// header followed by the avro body. *sr.Serde satisfies it.
type Serde interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

// Opt configures a serde. SubjectOpt and SchemaIdentifierOpt are required.
type Opt func(*serdeOpts) error

type serdeOpts struct {
	subject string
	si      SchemaIdentifier
}

func (o serdeOpts) complete() bool {
	return o.subject != "" && o.si != nil
}

func SubjectOpt(subject string) Opt {
	return func(so *serdeOpts) error {
		if subject == "" {
			return errors.New("subject is empty string")
		}
		so.subject = subject
		return nil
	}
}

func SchemaIdentifierOpt(si SchemaIdentifier) Opt {
	return func(so *serdeOpts) error {
		if si == nil {
			return errors.New("schema identifier is nil")
		}
		so.si = si
		return nil
	}
}

func NewSerdeCartEventV1(ctx context.Context, opts ...Opt) (Serde, error) {
	return newSerde[CartEventV1](ctx, "NewSerdeCartEventV1", CartEventSchemaTextV1, opts)
}

func NewSerdeSearchEventV1(ctx context.Context, opts ...Opt) (Serde, error) {
	return newSerde[SearchEventV1](ctx, "NewSerdeSearchEventV1", SearchEventSchemaTextV1, opts)
}

// newSerde parses schemaText, resolves its registry id under the
// configured subject and binds the id to values of type T.
func newSerde[T any](
	ctx context.Context, op, schemaText string, opts []Opt,
) (Serde, error) {
	var so serdeOpts
	for _, o := range opts {
		if err := o(&so); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if !so.complete() {
		return nil, fmt.Errorf("%s: %w", op, ErrTooFewOpts)
	}

	avroSchema, err := avro.Parse(schemaText)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := so.si.DetermineID(ctx, so.subject, schemaText)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var s sr.Serde
	var zero T
	s.Register(
		id,
		zero,
		sr.EncodeFn(func(v any) ([]byte, error) {
			return avro.Marshal(avroSchema, v)
		}),
		sr.DecodeFn(func(data []byte, v any) error {
			return avro.Unmarshal(avroSchema, data, v)
		}),
	)
	return &s, nil
}
