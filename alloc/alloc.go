// Package alloc defines how a container obtains page storage and how it
// starts and ends the life of individual elements inside that storage.
//
// Allocated capacity and live elements are tracked separately: a page handed
// out by Allocate holds only uninitialised slots until Construct fills one.
package alloc

// Constructor builds a single element value. A non-nil error means no value
// was produced and the target slot must be left untouched.
type Constructor[T any] func() (T, error)

// Allocator supplies page storage and element lifecycle operations.
type Allocator[T any] interface {
	// Allocate returns raw storage for n slots.
	Allocate(n int) ([]T, error)
	// Deallocate releases storage previously returned by Allocate.
	Deallocate(page []T)
	// Construct runs ctor and stores its result in slot if it succeeds.
	Construct(slot *T, ctor Constructor[T]) error
	// Destroy ends the life of the element held in slot.
	Destroy(slot *T)
}

// CopyPolicy is implemented by allocators that choose which allocator a copy
// of their container should use.
type CopyPolicy[T any] interface {
	SelectOnCopy() Allocator[T]
}

// SelectOnCopy returns the allocator a copied container should be built with.
// Allocators without a CopyPolicy are shared with the copy.
func SelectOnCopy[T any](a Allocator[T]) Allocator[T] {
	if policy, ok := a.(CopyPolicy[T]); ok {
		return policy.SelectOnCopy()
	}
	return a
}

// Default allocates pages with make and constructs by plain assignment.
type Default[T any] struct{}

// NewDefault returns the default allocator.
func NewDefault[T any]() Default[T] {
	return Default[T]{}
}

// Allocate implements Allocator.
func (Default[T]) Allocate(n int) ([]T, error) {
	return make([]T, n), nil
}

// Deallocate implements Allocator. The page is left to the garbage collector.
func (Default[T]) Deallocate(page []T) {}

// Construct implements Allocator.
func (Default[T]) Construct(slot *T, ctor Constructor[T]) error {
	value, err := ctor()
	if err != nil {
		return err
	}
	*slot = value
	return nil
}

// Destroy implements Allocator. Zeroing drops any references held by the slot.
func (Default[T]) Destroy(slot *T) {
	var zero T
	*slot = zero
}

// Value returns a Constructor that yields v.
func Value[T any](v T) Constructor[T] {
	return func() (T, error) {
		return v, nil
	}
}

// Zero returns a Constructor that yields the zero value of T.
func Zero[T any]() Constructor[T] {
	return func() (T, error) {
		var zero T
		return zero, nil
	}
}

// Copy returns a Constructor that copies src with fn, or by assignment when
// fn is nil.
func Copy[T any](src T, fn func(T) (T, error)) Constructor[T] {
	if fn == nil {
		return Value(src)
	}
	return func() (T, error) {
		return fn(src)
	}
}
