package deque

import (
	"iter"

	"github.com/fission-codes/go-deque/iterator"
	"github.com/fission-codes/go-deque/position"
)

// All returns an iterator over index-value pairs from front to back.
// The deque must not be modified during iteration.
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if d.Empty() {
			return
		}
		i := 0
		for p := d.start; p != d.end; p = position.StepRight(p, d.capacity) {
			if !yield(i, *d.slot(p)) {
				return
			}
			i++
		}
	}
}

// Values returns an iterator over the elements from front to back.
func (d *Deque[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range d.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Backward returns an iterator over index-value pairs from back to front.
func (d *Deque[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if d.Empty() {
			return
		}
		i := d.Len() - 1
		for p := d.end; p != d.start; i-- {
			p = position.StepLeft(p, d.capacity)
			if !yield(i, *d.slot(p)) {
				return
			}
		}
	}
}

// Slice copies the elements into a new slice.
func (d *Deque[T]) Slice() []T {
	s := make([]T, 0, d.Len())
	for v := range d.Values() {
		s = append(s, v)
	}
	return s
}

// Cursor is a pull iterator over a deque, for callers of the iterator package.
type Cursor[T any] struct {
	d  *Deque[T]
	it Iterator[T]
}

// Cursor returns a pull iterator positioned at the first element.
func (d *Deque[T]) Cursor() *Cursor[T] {
	return &Cursor[T]{d: d, it: d.Begin()}
}

var _ iterator.Iterator[int] = (*Cursor[int])(nil)

// Next returns a pointer to the next element, or iterator.ErrDone.
func (c *Cursor[T]) Next() (*T, error) {
	if !c.it.Less(c.d.End()) {
		return nil, iterator.ErrDone
	}
	item := c.it.Ptr()
	c.it = c.it.Next()
	return item, nil
}

// Equal reports whether a and b hold equal elements in the same order.
func Equal[T comparable](a, b *Deque[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	if a.Empty() {
		return true
	}
	ia, ib := a.Begin(), b.Begin()
	for n := a.Len(); n > 0; n-- {
		if ia.Get() != ib.Get() {
			return false
		}
		ia, ib = ia.Next(), ib.Next()
	}
	return true
}

// IndexOf returns the index of the first element equal to v, or -1.
func IndexOf[T comparable](d *Deque[T], v T) int {
	for i, x := range d.All() {
		if x == v {
			return i
		}
	}
	return -1
}

// Contains reports whether v is in d.
func Contains[T comparable](d *Deque[T], v T) bool {
	return IndexOf(d, v) >= 0
}
