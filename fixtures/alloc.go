package fixtures

import (
	"errors"
	"fmt"

	"github.com/fission-codes/go-deque/alloc"
)

// ErrInjected is returned by Allocator when a failure has been scheduled.
var ErrInjected = errors.New("injected failure")

// Allocator is a test allocator that keeps count of live pages and elements
// and can be told to fail a future Allocate or Construct call.
type Allocator[T any] struct {
	inner alloc.Default[T]

	// Name identifies the allocator; copies selected with SelectOnCopy
	// append "/copy".
	Name string

	Allocations int
	Constructs  int
	Pages       int
	Live        int

	failAllocate  int
	failConstruct int
}

func NewAllocator[T any](name string) *Allocator[T] {
	return &Allocator[T]{Name: name}
}

// FailAllocateAfter makes the k-th Allocate call from now fail. k <= 0
// cancels a scheduled failure.
func (a *Allocator[T]) FailAllocateAfter(k int) {
	if k <= 0 {
		a.failAllocate = 0
		return
	}
	a.failAllocate = a.Allocations + k
}

// FailConstructAfter makes the k-th Construct call from now fail. k <= 0
// cancels a scheduled failure.
func (a *Allocator[T]) FailConstructAfter(k int) {
	if k <= 0 {
		a.failConstruct = 0
		return
	}
	a.failConstruct = a.Constructs + k
}

func (a *Allocator[T]) Allocate(n int) ([]T, error) {
	a.Allocations++
	if a.Allocations == a.failAllocate {
		return nil, fmt.Errorf("%w: allocate %d", ErrInjected, a.Allocations)
	}
	page, err := a.inner.Allocate(n)
	if err != nil {
		return nil, err
	}
	a.Pages++
	return page, nil
}

func (a *Allocator[T]) Deallocate(page []T) {
	a.inner.Deallocate(page)
	a.Pages--
}

func (a *Allocator[T]) Construct(slot *T, ctor alloc.Constructor[T]) error {
	a.Constructs++
	if a.Constructs == a.failConstruct {
		return fmt.Errorf("%w: construct %d", ErrInjected, a.Constructs)
	}
	if err := a.inner.Construct(slot, ctor); err != nil {
		return err
	}
	a.Live++
	return nil
}

func (a *Allocator[T]) Destroy(slot *T) {
	a.inner.Destroy(slot)
	a.Live--
}

// SelectOnCopy returns a fresh allocator so copies are accounted separately.
func (a *Allocator[T]) SelectOnCopy() alloc.Allocator[T] {
	return NewAllocator[T](a.Name + "/copy")
}

// Balanced reports whether every page and element has been released.
func (a *Allocator[T]) Balanced() bool {
	return a.Pages == 0 && a.Live == 0
}
