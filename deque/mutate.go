package deque

import (
	"fmt"

	"github.com/fission-codes/go-deque/alloc"
	dqerrors "github.com/fission-codes/go-deque/errors"
	"github.com/fission-codes/go-deque/position"
)

// indexOf validates that it was derived from d's current table and returns
// its logical index.
func (d *Deque[T]) indexOf(it Iterator[T]) (int, error) {
	if it.d != d {
		return 0, dqerrors.ErrForeignIterator
	}
	if it.gen != d.gen {
		return 0, dqerrors.ErrStaleIterator
	}
	return it.Index(), nil
}

func (d *Deque[T]) swapSlots(a, b position.Position) {
	x, y := d.slot(a), d.slot(b)
	*x, *y = *y, *x
}

// Emplace constructs a new element with ctor in front of the element at it,
// shifting the rest of the deque one slot toward the back. it may be End().
// The returned iterator addresses the new element; all other iterators are
// invalidated if the table had to grow.
func (d *Deque[T]) Emplace(it Iterator[T], ctor alloc.Constructor[T]) (Iterator[T], error) {
	idx, err := d.indexOf(it)
	if err != nil {
		return Iterator[T]{}, err
	}
	if idx < 0 || idx > d.Len() {
		return Iterator[T]{}, fmt.Errorf("%w: insert at %d with length %d", dqerrors.ErrOutOfRange, idx, d.Len())
	}
	// idx survives a reallocation, the iterator's position does not
	if err := d.EmplaceBack(ctor); err != nil {
		return Iterator[T]{}, err
	}
	p := position.StepLeft(d.end, d.capacity)
	for i := d.Len() - 1; i > idx; i-- {
		q := position.StepLeft(p, d.capacity)
		d.swapSlots(p, q)
		p = q
	}
	return d.iter(p), nil
}

// Insert places v in front of the element at it. See Emplace.
func (d *Deque[T]) Insert(it Iterator[T], v T) (Iterator[T], error) {
	return d.Emplace(it, alloc.Value(v))
}

// Erase removes the element at it, shifting the following elements one slot
// toward the front. It returns an iterator to the element that followed the
// erased one.
func (d *Deque[T]) Erase(it Iterator[T]) (Iterator[T], error) {
	idx, err := d.indexOf(it)
	if err != nil {
		return Iterator[T]{}, err
	}
	if idx < 0 || idx >= d.Len() {
		return Iterator[T]{}, fmt.Errorf("%w: erase at %d with length %d", dqerrors.ErrOutOfRange, idx, d.Len())
	}
	p := it.pos
	for q := position.StepRight(p, d.capacity); q != d.end; q = position.StepRight(q, d.capacity) {
		d.swapSlots(p, q)
		p = q
	}
	d.PopBack()
	return d.iter(it.pos), nil
}

// Clear destroys every element in order and releases every page. The next
// insertion re-allocates a table with the deque's configuration.
func (d *Deque[T]) Clear() {
	d.setup()
	destroyed := 0
	for p := d.start; p != d.end; p = position.StepRight(p, d.capacity) {
		d.alloc.Destroy(d.slot(p))
		destroyed++
	}
	d.releasePages(d.pages)
	pages := len(d.pages)
	d.pages = nil
	d.start = position.Position{}
	d.end = position.Position{}
	d.gen = nextGeneration()
	d.event("Clear")
	d.log.Debugw("clear", "destroyed", destroyed, "pages", pages)
}
