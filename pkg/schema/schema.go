package schema

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/sr"
)

// A SchemaIdentifier resolves the registry id of the schema text under subject.
type SchemaIdentifier interface {
	DetermineID(ctx context.Context, subject string, avroSchemaText string) (int, error)
}

type schemaRegistryClient interface {
	CreateSchema(ctx context.Context, subject string, s sr.Schema) (sr.SubjectSchema, error)
}

// A SchemaRegistry registers avro schemas in the schema registry.
type SchemaRegistry struct {
	cl schemaRegistryClient
}

func NewSchemaRegistry(cl schemaRegistryClient) SchemaRegistry {
	return SchemaRegistry{cl}
}

// DetermineID registers the schema. Registering an already known
// schema returns its current id.
func (r SchemaRegistry) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (int, error) {
	const op = "SchemaRegistry.DetermineID"

	ss, err := r.cl.CreateSchema(ctx, subject, sr.Schema{
		Type:   sr.TypeAvro,
		Schema: avroSchemaText,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return ss.ID, nil
}
