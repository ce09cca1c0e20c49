package service

import (
	"context"
	"errors"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var errStorage = errors.New("storage failure")

type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (kv *memKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()
	return kv.data[key], nil
}

func (kv *memKV) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.data[key] = value
	return nil
}

func (kv *memKV) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.data, key)
	return nil
}

type MockKV struct {
	mock.Mock
}

func (kv *MockKV) Get(ctx context.Context, key string) ([]byte, error) {
	args := kv.Called(ctx, key)
	v, _ := args.Get(0).([]byte)
	return v, args.Error(1)
}

func (kv *MockKV) Set(ctx context.Context, key string, value []byte) error {
	args := kv.Called(ctx, key, value)
	return args.Error(0)
}

func (kv *MockKV) Delete(ctx context.Context, key string) error {
	args := kv.Called(ctx, key)
	return args.Error(0)
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProduct(id, p, category string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "Product " + id,
		Slug:     "product-" + id,
		Price:    price(p),
		Category: category,
		Sizes:    []string{"S", "M", "L"},
		Colors:   []string{"Red", "Blue"},
		InStock:  true,
	}
}
