package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.CartStore = (*CartStore)(nil)

// A CartStore is the single source of truth of the shopper cart.
//
// Every mutation is persisted as a snapshot to the key-value store
// and then delivered to subscribers in commit order. Safe for
// concurrent use.
type CartStore struct {
	kv  port.KeyValueStore
	key string

	mu   sync.Mutex
	cart domain.Cart
	seq  uint64

	// turn is the seq of the next change to deliver.
	turnMu   sync.Mutex
	turnCond *sync.Cond
	turn     uint64

	listenersMu sync.Mutex
	listeners   map[int]port.CartListener
	nextID      int
}

// NewCartStore restores the cart from the snapshot slot.
//
// Absent or malformed snapshot yields an empty cart.
func NewCartStore(ctx context.Context, kv port.KeyValueStore) *CartStore {
	s := &CartStore{
		kv:        kv,
		key:       CartSnapshotKey,
		listeners: make(map[int]port.CartListener),
	}
	s.turnCond = sync.NewCond(&s.turnMu)
	s.cart = s.restore(ctx)
	return s
}

func (s *CartStore) restore(ctx context.Context) domain.Cart {
	const op = "CartStore.restore"
	log := slog.With("op", op)

	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		log.Warn("failed to read cart snapshot", "err", err)
		return domain.Cart{}
	}
	if data == nil {
		return domain.Cart{}
	}

	c, err := decodeCart(data)
	if err != nil {
		log.Warn("discard malformed cart snapshot", "err", err)
		return domain.Cart{}
	}

	log.Info("cart restored", "lines", len(c.Lines))
	return c
}

// AddItem appends a new line or increments the quantity of the line
// with the same product, size and color.
func (s *CartStore) AddItem(
	ctx context.Context, p domain.Product, quantity int, size, color string,
) error {
	const op = "CartStore.AddItem"

	if quantity < 1 {
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidQuantity)
	}
	if p.ID == "" {
		return fmt.Errorf("%s: %w", op, domain.ErrEmptyProductID)
	}
	if !p.HasSize(size) || !p.HasColor(color) {
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidVariant)
	}

	s.mu.Lock()
	k := domain.LineKey{ProductID: p.ID, Size: size, Color: color}
	if i := s.cart.Index(k); i != -1 {
		s.cart.Lines[i].Quantity += quantity
	} else {
		s.cart.Lines = append(s.cart.Lines, domain.CartLine{
			Product:  p,
			Quantity: quantity,
			Size:     size,
			Color:    color,
		})
	}
	c, seq := s.commit(ctx)
	s.mu.Unlock()

	s.deliver(seq, domain.CartChange{
		Action:    domain.CartActionAdd,
		ProductID: p.ID,
		Size:      size,
		Color:     color,
		Quantity:  quantity,
		Cart:      c,
	})
	return nil
}

// RemoveItem removes every line of the product, whatever its size and color.
func (s *CartStore) RemoveItem(ctx context.Context, productID string) {
	s.remove(ctx, productID, func(l domain.CartLine) bool {
		return l.Product.ID == productID
	}, "", "")
}

// RemoveLine removes the single line identified by k.
func (s *CartStore) RemoveLine(ctx context.Context, k domain.LineKey) {
	s.remove(ctx, k.ProductID, func(l domain.CartLine) bool {
		return l.Key() == k
	}, k.Size, k.Color)
}

func (s *CartStore) remove(
	ctx context.Context,
	productID string,
	match func(domain.CartLine) bool,
	size, color string,
) {
	s.mu.Lock()
	kept := s.cart.Lines[:0:0]
	for _, l := range s.cart.Lines {
		if !match(l) {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(s.cart.Lines) {
		s.mu.Unlock()
		return
	}
	s.cart.Lines = kept
	c, seq := s.commit(ctx)
	s.mu.Unlock()

	s.deliver(seq, domain.CartChange{
		Action:    domain.CartActionRemove,
		ProductID: productID,
		Size:      size,
		Color:     color,
		Cart:      c,
	})
}

// UpdateQuantity sets the quantity of every line of the product.
//
// Quantity is clamped to a minimum of 1. Unknown product id is a no-op.
func (s *CartStore) UpdateQuantity(
	ctx context.Context, productID string, quantity int,
) {
	s.update(ctx, productID, func(l domain.CartLine) bool {
		return l.Product.ID == productID
	}, quantity, "", "")
}

// UpdateLineQuantity is UpdateQuantity narrowed to the line identified by k.
func (s *CartStore) UpdateLineQuantity(
	ctx context.Context, k domain.LineKey, quantity int,
) {
	s.update(ctx, k.ProductID, func(l domain.CartLine) bool {
		return l.Key() == k
	}, quantity, k.Size, k.Color)
}

func (s *CartStore) update(
	ctx context.Context,
	productID string,
	match func(domain.CartLine) bool,
	quantity int,
	size, color string,
) {
	quantity = max(quantity, 1)

	s.mu.Lock()
	var found bool
	for i, l := range s.cart.Lines {
		if match(l) {
			s.cart.Lines[i].Quantity = quantity
			found = true
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	c, seq := s.commit(ctx)
	s.mu.Unlock()

	s.deliver(seq, domain.CartChange{
		Action:    domain.CartActionUpdate,
		ProductID: productID,
		Size:      size,
		Color:     color,
		Quantity:  quantity,
		Cart:      c,
	})
}

// Clear empties the cart.
func (s *CartStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.cart = domain.Cart{}
	c, seq := s.commit(ctx)
	s.mu.Unlock()

	s.deliver(seq, domain.CartChange{Action: domain.CartActionClear, Cart: c})
}

// Deduct subtracts the quantities of ordered from the matching lines
// and drops the lines that reach zero. Lines added or raised after
// ordered was read are kept.
func (s *CartStore) Deduct(ctx context.Context, ordered []domain.CartLine) {
	s.mu.Lock()
	var changed bool
	for _, o := range ordered {
		i := s.cart.Index(o.Key())
		if i == -1 {
			continue
		}
		s.cart.Lines[i].Quantity -= o.Quantity
		changed = true
	}
	if !changed {
		s.mu.Unlock()
		return
	}
	s.cart.Lines = slices.DeleteFunc(s.cart.Lines, func(l domain.CartLine) bool {
		return l.Quantity < 1
	})
	c, seq := s.commit(ctx)
	s.mu.Unlock()

	s.deliver(seq, domain.CartChange{Action: domain.CartActionCheckout, Cart: c})
}

// Cart returns a copy of the current cart.
func (s *CartStore) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *CartStore) Items() []domain.CartLine {
	return s.Cart().Lines
}

func (s *CartStore) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalItems()
}

func (s *CartStore) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalPrice()
}

// Subscribe registers l to be called after each committed mutation.
//
// Listeners run synchronously on the mutating goroutine, in
// subscription order. Changes reach listeners in commit order, so a
// listener may read the store but must not mutate it. The returned
// func unsubscribes l.
func (s *CartStore) Subscribe(l port.CartListener) (unsubscribe func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			delete(s.listeners, id)
			s.listenersMu.Unlock()
		})
	}
}

// commit persists the snapshot and returns a copy of the cart with
// the delivery sequence number of the change.
//
// The snapshot is written even if ctx is canceled: the in-memory
// cart is already mutated. Must be called with s.mu held.
func (s *CartStore) commit(ctx context.Context) (domain.Cart, uint64) {
	const op = "CartStore.commit"
	log := slog.With("op", op)

	seq := s.seq
	s.seq++

	data, err := encodeCart(s.cart)
	if err != nil {
		log.Error("failed to encode cart snapshot", "err", err)
		return s.cart.Clone(), seq
	}

	if err := s.kv.Set(context.WithoutCancel(ctx), s.key, data); err != nil {
		log.Error("failed to persist cart snapshot", "err", err)
	}
	return s.cart.Clone(), seq
}

// deliver waits for the changes committed before seq to be delivered
// and then notifies the listeners.
func (s *CartStore) deliver(seq uint64, change domain.CartChange) {
	s.turnMu.Lock()
	for s.turn != seq {
		s.turnCond.Wait()
	}
	s.turnMu.Unlock()

	defer func() {
		s.turnMu.Lock()
		s.turn++
		s.turnCond.Broadcast()
		s.turnMu.Unlock()
	}()
	s.notify(change)
}

func (s *CartStore) notify(change domain.CartChange) {
	s.listenersMu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	ls := make([]port.CartListener, len(ids))
	for i, id := range ids {
		ls[i] = s.listeners[id]
	}
	s.listenersMu.Unlock()

	for _, l := range ls {
		l(change)
	}
}
