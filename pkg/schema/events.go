package schema

import "time"

const CartEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "cart_event",
	"fields": [
		{"name": "user_id", "type": "string"},
		{"name": "action", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "size", "type": "string"},
		{"name": "color", "type": "string"},
		{"name": "quantity", "type": "long"},
		{"name": "total_items", "type": "long"},
		{"name": "total_price", "type": "string"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

const SearchEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "search_event",
	"fields": [
		{"name": "user_id", "type": "string"},
		{"name": "query", "type": "string"},
		{"name": "category", "type": "string"},
		{"name": "sort", "type": "string"},
		{"name": "results", "type": "long"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type (
	CartEventV1 struct {
		UserID     string    `avro:"user_id"`
		Action     string    `avro:"action"`
		ProductID  string    `avro:"product_id"`
		Size       string    `avro:"size"`
		Color      string    `avro:"color"`
		Quantity   int64     `avro:"quantity"`
		TotalItems int64     `avro:"total_items"`
		TotalPrice string    `avro:"total_price"` // decimal string, cents stay exact
		OccurredAt time.Time `avro:"occurred_at"`
	}

	SearchEventV1 struct {
		UserID     string    `avro:"user_id"`
		Query      string    `avro:"query"`
		Category   string    `avro:"category"`
		Sort       string    `avro:"sort"`
		Results    int64     `avro:"results"`
		OccurredAt time.Time `avro:"occurred_at"`
	}
)
