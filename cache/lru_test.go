package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("valid capacity", func(t *testing.T) {
		c, err := New[string, int](8)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("invalid capacity", func(t *testing.T) {
		_, err := New[string, int](0)
		assert.ErrorIs(t, err, ErrInvalidCapacity)

		_, err = New[string, int](-1)
		assert.ErrorIs(t, err, ErrInvalidCapacity)
	})
}

func TestGetOrCreate(t *testing.T) {
	t.Run("constructs once per key", func(t *testing.T) {
		c, err := New[string, int](4)
		require.NoError(t, err)

		calls := 0
		create := func() (int, error) {
			calls++
			return 42, nil
		}

		v, err := c.GetOrCreate("answer", create)
		require.NoError(t, err)
		assert.Equal(t, 42, v)

		v, err = c.GetOrCreate("answer", create)
		require.NoError(t, err)
		assert.Equal(t, 42, v)

		assert.Equal(t, 1, calls)
	})

	t.Run("failed create caches nothing", func(t *testing.T) {
		c, err := New[string, int](4)
		require.NoError(t, err)

		boom := errors.New("boom")
		_, err = c.GetOrCreate("k", func() (int, error) { return 0, boom })
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, c.Len())
	})
}

func TestEviction(t *testing.T) {
	c, err := New[int, int](2)
	require.NoError(t, err)

	mk := func(v int) func() (int, error) {
		return func() (int, error) { return v, nil }
	}

	_, err = c.GetOrCreate(1, mk(1))
	require.NoError(t, err)
	_, err = c.GetOrCreate(2, mk(2))
	require.NoError(t, err)

	// Touch 1 so 2 becomes least recently used.
	_, ok := c.Get(1)
	require.True(t, ok)

	_, err = c.GetOrCreate(3, mk(3))
	require.NoError(t, err)

	_, ok = c.Get(2)
	assert.False(t, ok, "least recently used entry is evicted")
	_, ok = c.Get(1)
	assert.True(t, ok)
	_, ok = c.Get(3)
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestStats(t *testing.T) {
	c, err := New[string, int](2)
	require.NoError(t, err)

	_, _ = c.Get("missing")
	_, err = c.GetOrCreate("k", func() (int, error) { return 1, nil })
	require.NoError(t, err)
	_, _ = c.Get("k")

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(2), misses)
}

func TestConcurrentAccess(t *testing.T) {
	c, err := New[int, int](64)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				key := (g*100 + i) % 32
				_, err := c.GetOrCreate(key, func() (int, error) { return key * 2, nil })
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	v, ok := c.Get(7)
	require.True(t, ok)
	assert.Equal(t, 14, v)
}
