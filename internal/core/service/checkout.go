package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var (
	ErrNotLoggedIn  = errors.New("login required")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidPhone = errors.New("phone must be a 10-digit number")
)

var phoneRe = regexp.MustCompile(`^\d{10}$`)

var _ port.OrderPlacer = (*Checkout)(nil)

// A Checkout places cash on delivery orders.
//
// Orders are not stored anywhere: a placed order deducts its lines
// from the cart and is returned to the caller.
type Checkout struct {
	auth  port.Authenticator
	cart  port.CartStore
	delay time.Duration
	now   func() time.Time
}

func NewCheckout(
	auth port.Authenticator, cart port.CartStore, delay time.Duration,
) Checkout {
	return Checkout{auth: auth, cart: cart, delay: delay, now: time.Now}
}

func (s Checkout) PlaceOrder(
	ctx context.Context, addr domain.Address,
) (domain.Order, error) {
	const op = "Checkout.PlaceOrder"
	log := slog.With("op", op)

	u, ok := s.auth.CurrentUser()
	if !ok {
		return domain.Order{}, fmt.Errorf("%s: %w", op, ErrNotLoggedIn)
	}

	if err := addr.Validate(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	if !phoneRe.MatchString(addr.Phone) {
		return domain.Order{}, fmt.Errorf("%s: %w", op, ErrInvalidPhone)
	}

	c := s.cart.Cart()
	if c.Empty() {
		return domain.Order{}, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	if err := simulateLatency(ctx, s.delay); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	order := domain.Order{
		ID:              uuid.NewString(),
		UserID:          u.ID,
		Items:           c.Lines,
		Total:           c.TotalPrice(),
		Status:          domain.OrderPending,
		ShippingAddress: addr,
		CreatedAt:       s.now(),
	}

	s.cart.Deduct(ctx, c.Lines)

	log.Info(
		"order placed",
		"orderID", order.ID,
		"userID", u.ID,
		"total", order.Total.StringFixed(2),
	)
	return order, nil
}
