package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerTracking(t *testing.T) {
	t.Run("tracking only without limit", func(t *testing.T) {
		c := NewController(Config{})

		assert.True(t, c.TryAcquireMemory(1024))
		assert.Equal(t, int64(1024), c.MemoryUsed())

		c.ReleaseMemory(1024)
		assert.Equal(t, int64(0), c.MemoryUsed())
	})

	t.Run("nil controller is a no-op", func(t *testing.T) {
		var c *Controller

		assert.True(t, c.TryAcquireMemory(1024))
		assert.NoError(t, c.AcquireMemory(context.Background(), 1024))
		c.ReleaseMemory(1024)
		assert.Equal(t, int64(0), c.MemoryUsed())
	})

	t.Run("non-positive amounts are ignored", func(t *testing.T) {
		c := NewController(Config{MemoryLimitBytes: 10})

		assert.True(t, c.TryAcquireMemory(0))
		assert.True(t, c.TryAcquireMemory(-5))
		assert.Equal(t, int64(0), c.MemoryUsed())
	})
}

func TestControllerLimit(t *testing.T) {
	t.Run("try acquire respects limit", func(t *testing.T) {
		c := NewController(Config{MemoryLimitBytes: 1024})

		assert.True(t, c.TryAcquireMemory(512))
		assert.True(t, c.TryAcquireMemory(512))
		assert.False(t, c.TryAcquireMemory(1))

		c.ReleaseMemory(512)
		assert.True(t, c.TryAcquireMemory(256))
	})

	t.Run("acquire respects context", func(t *testing.T) {
		c := NewController(Config{MemoryLimitBytes: 100})
		require.NoError(t, c.AcquireMemory(context.Background(), 100))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := c.AcquireMemory(ctx, 1)
		assert.Error(t, err)
	})

	t.Run("limit is reported", func(t *testing.T) {
		c := NewController(Config{MemoryLimitBytes: 2048})
		assert.Equal(t, int64(2048), c.MemoryLimit())
	})
}
