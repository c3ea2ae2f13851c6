package instrumented

import (
	"time"
	"unsafe"

	"github.com/fission-codes/go-deque/alloc"
	"github.com/fission-codes/go-deque/stats"
)

// Allocator is an Allocator that records stats for every call.
type Allocator[T any] struct {
	allocator alloc.Allocator[T]
	stats     stats.Stats
}

// New returns a new Allocator wrapping allocator.
func New[T any](allocator alloc.Allocator[T], stats stats.Stats) *Allocator[T] {
	return &Allocator[T]{
		allocator: allocator,
		stats:     stats,
	}
}

// Unwrap returns the wrapped allocator.
func (ia *Allocator[T]) Unwrap() alloc.Allocator[T] {
	return ia.allocator
}

// Allocate calls the underlying allocator's Allocate method and records stats.
func (ia *Allocator[T]) Allocate(n int) ([]T, error) {
	ia.stats.Logger().Debugw("enter", "method", "Allocate", "slots", n)
	begin := time.Now()
	page, err := ia.allocator.Allocate(n)
	if err == nil {
		var zero T
		ia.stats.Log("Allocate.Ok")
		ia.stats.LogBytes("Allocate", uint64(n)*uint64(unsafe.Sizeof(zero)))
	} else {
		ia.stats.Log("Allocate." + err.Error())
	}
	ia.stats.LogInterval("Allocate", time.Since(begin))
	ia.stats.Logger().Debugw("exit", "method", "Allocate", "slots", len(page), "error", err)
	return page, err
}

// Deallocate calls the underlying allocator's Deallocate method and records stats.
func (ia *Allocator[T]) Deallocate(page []T) {
	ia.stats.Logger().Debugw("enter", "method", "Deallocate", "slots", len(page))
	ia.allocator.Deallocate(page)
	ia.stats.Log("Deallocate")
}

// Construct calls the underlying allocator's Construct method and records stats.
func (ia *Allocator[T]) Construct(slot *T, ctor alloc.Constructor[T]) error {
	ia.stats.Logger().Debugw("enter", "method", "Construct")
	begin := time.Now()
	err := ia.allocator.Construct(slot, ctor)
	if err == nil {
		ia.stats.Log("Construct.Ok")
	} else {
		ia.stats.Log("Construct." + err.Error())
	}
	ia.stats.LogInterval("Construct", time.Since(begin))
	ia.stats.Logger().Debugw("exit", "method", "Construct", "error", err)
	return err
}

// Destroy calls the underlying allocator's Destroy method and records stats.
func (ia *Allocator[T]) Destroy(slot *T) {
	ia.allocator.Destroy(slot)
	ia.stats.Log("Destroy")
}

// SelectOnCopy instruments the allocator the wrapped one selects for a copy,
// counting into the same stats context.
func (ia *Allocator[T]) SelectOnCopy() alloc.Allocator[T] {
	ia.stats.Log("SelectOnCopy")
	return New(alloc.SelectOnCopy(ia.allocator), ia.stats)
}
