package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRegistration = errors.New("name, email and password are required")

	errEmptyUserID = errors.New("empty user id")
)

var _ port.Authenticator = (*Auth)(nil)

// Demo accounts accepted by the mock authentication.
const (
	demoUserEmail     = "user@example.com"
	demoUserPassword  = "password"
	demoAdminEmail    = "admin@example.com"
	demoAdminPassword = "admin123"
)

var (
	demoUser  = domain.User{ID: "123", Name: "John Doe", IsAdmin: false}
	demoAdmin = domain.User{ID: "admin1", Name: "Admin User", IsAdmin: true}
)

// An Auth is a mock authentication service.
//
// Every call but Logout and CurrentUser completes after a simulated
// network delay. The logged in user is persisted as session snapshot.
type Auth struct {
	kv    port.KeyValueStore
	delay time.Duration

	mu   sync.RWMutex
	user *domain.User
}

// NewAuth restores the session snapshot.
//
// Absent or malformed snapshot means no user is logged in.
func NewAuth(ctx context.Context, kv port.KeyValueStore, delay time.Duration) *Auth {
	a := &Auth{kv: kv, delay: delay}
	a.user = a.restore(ctx)
	return a
}

func (a *Auth) restore(ctx context.Context) *domain.User {
	const op = "Auth.restore"
	log := slog.With("op", op)

	data, err := a.kv.Get(ctx, SessionSnapshotKey)
	if err != nil {
		log.Warn("failed to read session snapshot", "err", err)
		return nil
	}
	if data == nil {
		return nil
	}

	u, err := decodeUser(data)
	if err != nil {
		log.Warn("discard malformed session snapshot", "err", err)
		return nil
	}
	return &u
}

func (a *Auth) Login(
	ctx context.Context, email, password string,
) (domain.User, error) {
	const op = "Auth.Login"

	if err := simulateLatency(ctx, a.delay); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if email != demoUserEmail || password != demoUserPassword {
		return domain.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	u := demoUser
	u.Email = email
	a.setUser(ctx, u)
	return u, nil
}

func (a *Auth) AdminLogin(
	ctx context.Context, email, password string,
) (domain.User, error) {
	const op = "Auth.AdminLogin"

	if err := simulateLatency(ctx, a.delay); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if email != demoAdminEmail || password != demoAdminPassword {
		return domain.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	u := demoAdmin
	u.Email = email
	a.setUser(ctx, u)
	return u, nil
}

// Register accepts any non-empty account data and logs the new user in.
func (a *Auth) Register(
	ctx context.Context, name, email, password string,
) (domain.User, error) {
	const op = "Auth.Register"

	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return domain.User{}, fmt.Errorf("%s: %w", op, ErrInvalidRegistration)
	}

	if err := simulateLatency(ctx, a.delay); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	u := domain.User{
		ID:    "user-" + uuid.NewString(),
		Name:  name,
		Email: email,
	}
	a.setUser(ctx, u)
	return u, nil
}

func (a *Auth) Logout(ctx context.Context) {
	const op = "Auth.Logout"
	log := slog.With("op", op)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.user = nil
	if err := a.kv.Delete(context.WithoutCancel(ctx), SessionSnapshotKey); err != nil {
		log.Error("failed to delete session snapshot", "err", err)
	}
	log.Info("logged out")
}

func (a *Auth) CurrentUser() (domain.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return domain.User{}, false
	}
	return *a.user, true
}

func (a *Auth) setUser(ctx context.Context, u domain.User) {
	const op = "Auth.setUser"
	log := slog.With("op", op, "userID", u.ID)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.user = &u

	data, err := encodeUser(u)
	if err != nil {
		log.Error("failed to encode session snapshot", "err", err)
		return
	}
	if err := a.kv.Set(context.WithoutCancel(ctx), SessionSnapshotKey, data); err != nil {
		log.Error("failed to persist session snapshot", "err", err)
	}
	log.Info("logged in", "isAdmin", u.IsAdmin)
}

// simulateLatency blocks for d or until ctx is done.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
