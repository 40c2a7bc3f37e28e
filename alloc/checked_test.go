package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeT captures assertion failures without failing the real test.
type fakeT struct {
	failures int
}

func (f *fakeT) Errorf(format string, args ...any) { f.failures++ }
func (f *fakeT) Helper()                           {}

func TestChecked(t *testing.T) {
	t.Run("balanced usage passes", func(t *testing.T) {
		c := NewChecked(NewAligned[int32](WithAlignment(64)))

		block, err := c.Allocate(16)
		require.NoError(t, err)
		c.Deallocate(block, 16)

		var ft fakeT
		c.AssertEmpty(&ft)
		assert.Zero(t, ft.failures)

		allocs, deallocs := c.Counts()
		assert.Equal(t, 1, allocs)
		assert.Equal(t, 1, deallocs)
	})

	t.Run("leak is reported", func(t *testing.T) {
		c := NewChecked(NewAligned[int32]())

		_, err := c.Allocate(16)
		require.NoError(t, err)
		assert.Equal(t, 1, c.LiveBlocks())

		var ft fakeT
		c.AssertEmpty(&ft)
		assert.Equal(t, 1, ft.failures)
	})

	t.Run("mismatched count is reported", func(t *testing.T) {
		c := NewChecked(NewAligned[int32]())

		block, err := c.Allocate(16)
		require.NoError(t, err)
		c.Deallocate(block, 8)

		var ft fakeT
		c.AssertEmpty(&ft)
		assert.Equal(t, 1, ft.failures)
	})

	t.Run("alignment passes through", func(t *testing.T) {
		c := NewChecked(NewAligned[int32](WithAlignment(128)))
		assert.Equal(t, uintptr(128), c.Alignment())
	})
}
