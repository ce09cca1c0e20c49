package sigctx

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotifyContext(t *testing.T) {
	t.Run("ParentCancel", func(t *testing.T) {
		parent, cancelParent := context.WithCancel(context.Background())
		ctx, stop := NotifyContext(parent)
		defer stop()

		cancelParent()
		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Fatal("context is not done after parent cancel")
		}
	})

	t.Run("Signal", func(t *testing.T) {
		ctx, stop := NotifyContext(context.Background())
		defer stop()

		assert.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))
		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Fatal("context is not done after signal")
		}
	})
}
