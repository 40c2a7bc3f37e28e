package memkit

import (
	"github.com/hupe1980/memkit/alloc"
)

// CopyPolicy decides which allocator a copied array receives.
type CopyPolicy int

const (
	// ShareAllocator reuses the source array's allocator on copy.
	ShareAllocator CopyPolicy = iota
	// FreshAllocator gives the copy a default-constructed allocator.
	FreshAllocator
)

type config[T any] struct {
	allocator alloc.Allocator[T]
	policy    CopyPolicy
	destroy   func(*T)
	clone     func(T) (T, error)
	logger    *Logger
}

// Option configures a FixedArray at construction time.
type Option[T any] func(*config[T])

// WithAllocator sets the allocator the array obtains its block from.
// The default is alloc.NewAligned[T]().
func WithAllocator[T any](a alloc.Allocator[T]) Option[T] {
	return func(c *config[T]) {
		if a != nil {
			c.allocator = a
		}
	}
}

// WithCopyPolicy sets the allocator selection policy applied by Clone and
// CopyFrom.
func WithCopyPolicy[T any](policy CopyPolicy) Option[T] {
	return func(c *config[T]) {
		c.policy = policy
	}
}

// WithDestroy registers an element teardown hook, invoked once per live
// element when the array releases its block (Free, Reset, move, copy
// assignment and construction-failure cleanup).
func WithDestroy[T any](destroy func(*T)) Option[T] {
	return func(c *config[T]) {
		c.destroy = destroy
	}
}

// WithClone registers a failable deep-copy hook used whenever elements are
// copied in (NewValue, FromSlice, Collect, Clone, CopyFrom). Without it,
// elements are copied by plain assignment.
func WithClone[T any](clone func(T) (T, error)) Option[T] {
	return func(c *config[T]) {
		c.clone = clone
	}
}

// WithLogger attaches a logger for debug-level lifecycle events.
func WithLogger[T any](logger *Logger) Option[T] {
	return func(c *config[T]) {
		c.logger = logger
	}
}

func newConfig[T any](opts []Option[T]) config[T] {
	var cfg config[T]
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.allocator == nil {
		cfg.allocator = alloc.NewAligned[T]()
	}
	return cfg
}
